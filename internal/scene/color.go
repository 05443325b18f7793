package scene

import (
	"fmt"
	"strings"
)

// Color holds RGB channels in [0,1].
type Color struct {
	R, G, B float64
}

// Lerp interpolates each channel toward o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// namedColors covers the palette story scripts actually use.
var namedColors = map[string]Color{
	"white":   {1, 1, 1},
	"black":   {0, 0, 0},
	"red":     {1, 0, 0},
	"green":   {0, 0.5, 0},
	"lime":    {0, 1, 0},
	"blue":    {0, 0, 1},
	"yellow":  {1, 1, 0},
	"cyan":    {0, 1, 1},
	"magenta": {1, 0, 1},
	"orange":  {1, 0.647, 0},
	"purple":  {0.5, 0, 0.5},
	"pink":    {1, 0.753, 0.796},
	"gold":    {1, 0.843, 0},
	"silver":  {0.753, 0.753, 0.753},
	"gray":    {0.5, 0.5, 0.5},
	"grey":    {0.5, 0.5, 0.5},
}

// ParseColor accepts "#rgb", "#rrggbb", or a named color.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, err1 := hexNibble(hex[0])
		g, err2 := hexNibble(hex[1])
		b, err3 := hexNibble(hex[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("bad hex color %q", s)
		}
		// #f80 → #ff8800
		return Color{float64(r*17) / 255, float64(g*17) / 255, float64(b*17) / 255}, nil
	case 6:
		var rgb [3]float64
		for i := 0; i < 3; i++ {
			hi, err1 := hexNibble(hex[i*2])
			lo, err2 := hexNibble(hex[i*2+1])
			if err1 != nil || err2 != nil {
				return Color{}, fmt.Errorf("bad hex color %q", s)
			}
			rgb[i] = float64(hi*16+lo) / 255
		}
		return Color{rgb[0], rgb[1], rgb[2]}, nil
	default:
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}
}

func hexNibble(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, nil
	default:
		return 0, fmt.Errorf("bad hex digit %q", c)
	}
}
