package paintcanvas

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// Configuration errors. Validate wraps them with the offending value.
var (
	ErrInvalidSize         = errors.New("paintcanvas: width and height must be > 0")
	ErrInvalidBrushSize    = errors.New("paintcanvas: brush size must be > 0")
	ErrInvalidColor        = errors.New("paintcanvas: invalid color")
	ErrInvalidHistoryLimit = errors.New("paintcanvas: history limit must be >= 0")
)

// Config holds the externally owned drawing parameters.
type Config struct {
	// Color and BrushSize are recorded into every new segment.
	Color     color.Color
	BrushSize float64

	// Background, Width and Height describe the surface. Changing any of
	// them resets the history.
	Background color.Color
	Width      int
	Height     int

	// HistoryLimit bounds the number of retained entries. 0 is unbounded.
	HistoryLimit int
}

// DefaultConfig returns a black 3-unit brush on a white 640x480 surface.
func DefaultConfig() Config {
	return Config{
		Color:      color.NRGBA{A: 0xff},
		BrushSize:  3,
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Width:      640,
		Height:     480,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if !(c.BrushSize > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidBrushSize, c.BrushSize)
	}
	if c.Color == nil {
		return fmt.Errorf("%w: nil brush color", ErrInvalidColor)
	}
	if c.Background == nil {
		return fmt.Errorf("%w: nil background color", ErrInvalidColor)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidHistoryLimit, c.HistoryLimit)
	}
	return nil
}

// ParseColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA". The leading
// '#' is optional.
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	return toNRGBA(gg.Hex(hex)), nil
}

// toNRGBA rounds gg's unit-range components back to 8 bits.
func toNRGBA(c gg.RGBA) color.NRGBA {
	to8 := func(v float64) uint8 {
		return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 0xff))
	}
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when c is not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
