package format

import "github.com/blueprintmrk/graphy/pkg/chart"

// DefaultPalette is the color cycle used by AutoColor when no palette is
// given. Colors are RRGGBB hex without a leading '#'.
var DefaultPalette = []string{
	"0000ff",
	"ff0000",
	"00dd00",
	"000000",
	"aa00aa",
	"00aaaa",
	"888888",
}

type autoColor struct {
	palette []string
}

// AutoColor returns a formatter that assigns a color from DefaultPalette to
// every series that does not already have one. Series with an explicit color
// are left untouched, so applying the formatter twice is a no-op.
func AutoColor() chart.Formatter {
	return AutoColorWith(DefaultPalette)
}

// AutoColorWith is AutoColor with a custom palette. The palette cycles when
// there are more series than colors.
func AutoColorWith(palette []string) chart.Formatter {
	return autoColor{palette: palette}
}

func (autoColor) Name() string { return "auto_color" }

func (a autoColor) Apply(c *chart.Chart) error {
	if len(a.palette) == 0 {
		return nil
	}
	next := 0
	for _, s := range c.Series() {
		if s.Color() != "" {
			continue
		}
		s.SetColor(a.palette[next%len(a.palette)])
		next++
	}
	return nil
}
