// Package enka fetches public showcase data from enka.network and converts it to GOOD.
package enka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://enka.network"

var (
	ErrInvalidUID    = errors.New("invalid UID format")
	ErrDetailsHidden = errors.New("UID not found or player has not enabled details")
	ErrBadResponse   = errors.New("invalid enka response")
)

var uidRe = regexp.MustCompile(`^\d{9}$`)

// ValidateUID accepts exactly nine digits.
func ValidateUID(uid string) error {
	if !uidRe.MatchString(uid) {
		return fmt.Errorf("%w: %q", ErrInvalidUID, uid)
	}
	return nil
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
}

func NewClient(userAgent, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FetchUID returns the showcase of a player. The response must carry playerInfo.
func (c *Client) FetchUID(ctx context.Context, uid string) (*UIDResponse, error) {
	uid = strings.TrimSpace(uid)
	if err := ValidateUID(uid); err != nil {
		return nil, err
	}

	var resp UIDResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/uid/%s", c.baseURL, uid), &resp); err != nil {
		return nil, err
	}
	if resp.PlayerInfo == nil {
		return nil, ErrBadResponse
	}
	log.Debug().Str("uid", uid).Str("nickname", resp.PlayerInfo.Nickname).
		Int("avatars", len(resp.AvatarInfoList)).Msg("Enka profile fetched")
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrDetailsHidden
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("enka api status %d for %s: %s", resp.StatusCode, url, string(b))
	}

	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode json from %s: %w", url, err)
	}
	return nil
}
