package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a "#rrggbb" or "#rrggbbaa" yaml scalar.
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func ParseColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, err
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, err
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, err
	}
	out.A = 0xff
	if len(s) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, err
		}
	}
	return out, nil
}
