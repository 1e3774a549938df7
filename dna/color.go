package dna

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a palette color: H in degrees, S and L in percent
// Serialized as the CSS-style triple "320, 100%, 60%"
type HSL struct {
	H, S, L float64
}

// Color converts to a colorful.Color for blending
func (c HSL) Color() colorful.Color {
	return colorful.Hsl(c.H, c.S/100, c.L/100).Clamped()
}

// RGB converts to 8-bit channels
func (c HSL) RGB() (r, g, b uint8) {
	return c.Color().RGB255()
}

func (c HSL) String() string {
	return fmt.Sprintf("%g, %g%%, %g%%", c.H, c.S, c.L)
}

func (c HSL) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *HSL) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 3 {
		return fmt.Errorf("parse hsl %q: want 3 components", b)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(part), "%"), 64)
		if err != nil {
			return fmt.Errorf("parse hsl %q: %w", b, err)
		}
		v[i] = f
	}
	*c = HSL{H: v[0], S: v[1], L: v[2]}
	return nil
}
