package raster

import (
	"image/color"
	"strconv"
	"strings"
)

// Named stroke colors the tools offer. Anything else is tried as a
// "#rrggbb" hex value and falls back to black.
var namedColors = map[string]color.RGBA{
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
}

// ParseColor resolves a stroke color name or hex string to a concrete color.
func ParseColor(name string) color.RGBA {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	if hex, ok := parseHex(name); ok {
		return hex
	}
	return namedColors["black"]
}

// ColorName maps a concrete color back to its stroke name, hex when unnamed.
func ColorName(c color.Color) string {
	r, g, b, a := c.RGBA()
	rgba := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	for name, known := range namedColors {
		if known == rgba {
			return name
		}
	}
	return "#" + hexByte(rgba.R) + hexByte(rgba.G) + hexByte(rgba.B)
}

func parseHex(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
