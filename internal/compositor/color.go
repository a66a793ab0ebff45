package compositor

import (
	"image/color"
	"strconv"
	"strings"
)

// namedColors covers the CSS color names clients actually send.
var namedColors = map[string]color.RGBA{
	"white":   {255, 255, 255, 255},
	"black":   {0, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"purple":  {128, 0, 128, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"magenta": {255, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
}

// parseColor interprets a CSS color name or #rgb/#rrggbb hex value.
// Unrecognized input falls back to white so a bad color never aborts a
// render.
func parseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
	}
	return namedColors["white"]
}

func parseHex(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if okR && okG && okB {
			return color.RGBA{r * 17, g * 17, b * 17, 255}, true
		}
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
		}
	}
	return color.RGBA{}, false
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
