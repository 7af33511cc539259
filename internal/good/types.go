// Package good reads and writes GOOD (Genshin Open Object Description) account exports and
// converts them into the engine's account model.
package good

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

const Format = "GOOD"

type Substat struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type Artifact struct {
	SetKey              string    `json:"setKey"`
	SlotKey             string    `json:"slotKey"`
	Level               int       `json:"level"`
	Rarity              int       `json:"rarity"`
	MainStatKey         string    `json:"mainStatKey"`
	Location            string    `json:"location"`
	Lock                bool      `json:"lock"`
	Substats            []Substat `json:"substats"`
	TotalRolls          int       `json:"totalRolls,omitempty"`
	UnactivatedSubstats []Substat `json:"unactivatedSubstats,omitempty"`
}

type Weapon struct {
	Key        string `json:"key"`
	Level      int    `json:"level"`
	Ascension  int    `json:"ascension,omitempty"`
	Refinement int    `json:"refinement"`
	Location   string `json:"location"`
	Lock       bool   `json:"lock"`
}

type Talent struct {
	Auto  int `json:"auto"`
	Skill int `json:"skill"`
	Burst int `json:"burst"`
}

type Character struct {
	Key           string  `json:"key"`
	Level         int     `json:"level,omitempty"`
	Constellation int     `json:"constellation"`
	Ascension     int     `json:"ascension,omitempty"`
	Talent        *Talent `json:"talent,omitempty"`
}

type Data struct {
	Format     string      `json:"format"`
	Version    int         `json:"version"`
	Source     string      `json:"source"`
	Characters []Character `json:"characters,omitempty"`
	Weapons    []Weapon    `json:"weapons,omitempty"`
	Artifacts  []Artifact  `json:"artifacts,omitempty"`
}

// Decode parses a GOOD document. Only the format marker is checked; versions 1-3 share the
// fields read here.
func Decode(b []byte) (Data, error) {
	var d Data
	if err := sonic.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("decode GOOD json: %w", err)
	}
	if d.Format != Format {
		return Data{}, fmt.Errorf("not a GOOD export (format %q)", d.Format)
	}
	return d, nil
}

func ReadFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read GOOD file %s: %w", path, err)
	}
	return Decode(b)
}

// Write encodes d as indented JSON.
func Write(w io.Writer, d Data) error {
	b, err := sonic.ConfigStd.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode GOOD json: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}
