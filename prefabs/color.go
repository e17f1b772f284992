package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLColor accepts either "#rrggbb[aa]" or an [r, g, b(, a)] list.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return c.parseHex(value.Value)
	case yaml.SequenceNode:
		return c.parseList(value.Content)
	default:
		return fmt.Errorf("color must be a hex string or a list")
	}
}

func (c *YAMLColor) parseHex(raw string) error {
	s := strings.TrimPrefix(raw, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c *YAMLColor) parseList(items []*yaml.Node) error {
	if len(items) != 3 && len(items) != 4 {
		return fmt.Errorf("color list needs 3 or 4 channels, got %d", len(items))
	}
	ch := [4]uint8{0, 0, 0, 255}
	for i, n := range items {
		var v int
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("color channel %d: %w", i, err)
		}
		if v < 0 || v > 255 {
			return fmt.Errorf("color channel %d out of range: %d", i, v)
		}
		ch[i] = uint8(v)
	}
	c.Color = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}

// Color looks up a named colour, falling back when the table lacks it.
func (s *GameSpec) Color(name string, fallback color.Color) color.Color {
	if s == nil {
		return fallback
	}
	if c, ok := s.Colors[name]; ok && c.Color != nil {
		return c.Color
	}
	return fallback
}
