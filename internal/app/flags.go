package app

import (
	"strconv"
	"strings"
)

// stringOpt and boolOpt remember whether a flag was given so that flags only override state
// and config values when set.
type stringOpt struct {
	v   string
	set bool
}

func (o *stringOpt) String() string { return o.v }
func (o *stringOpt) Set(v string) error {
	o.v = v
	o.set = true
	return nil
}

type boolOpt struct {
	v   bool
	set bool
}

func (o *boolOpt) String() string {
	if o.v {
		return "true"
	}
	return "false"
}
func (o *boolOpt) Set(v string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	o.v = b
	o.set = true
	return nil
}

// IsBoolFlag lets "-flag" stand for "-flag=true".
func (o *boolOpt) IsBoolFlag() bool { return true }

// listOpt collects comma separated values; the flag may repeat.
type listOpt struct {
	v   []string
	set bool
}

func (o *listOpt) String() string { return strings.Join(o.v, ",") }
func (o *listOpt) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			o.v = append(o.v, p)
		}
	}
	o.set = true
	return nil
}

// multiOpt collects repeated values verbatim.
type multiOpt []string

func (o *multiOpt) String() string { return strings.Join(*o, "; ") }
func (o *multiOpt) Set(v string) error {
	*o = append(*o, v)
	return nil
}
