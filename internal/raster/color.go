package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads "#rrggbb", "#rgb" or "r,g,b[,a]". Opacity in [0,1] sets the
// alpha of the first two forms; the list form carries its own optional alpha on
// the 0..255 scale, 255 being opaque.
// An empty string, "none" or "transparent" returns nil.
func ParseColor(s string, opacity float64) (color.Color, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	switch strings.ToLower(s) {
	case "", "none":
		return nil, nil
	case "transparent":
		return color.NRGBA{}, nil
	}

	if strings.Contains(s, ",") {
		return parseRGBList(s, opacity)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha(opacity)}, nil
}

func parseRGBList(s string, opacity float64) (color.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q: expected 3 or 4 components", ErrInvalidColor, s)
	}

	var v [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		v[i] = clamp(n, 0, 255)
	}

	a := alpha(opacity)
	if len(parts) == 4 {
		a = uint8(v[3])
	}
	return color.NRGBA{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2]), A: a}, nil
}

func alpha(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(opacity*255 + 0.5)
}

func clamp(value, lo, hi int) int {
	return max(lo, min(hi, value))
}
