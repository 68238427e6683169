package googlechart

import (
	"fmt"
	"math"
	"strings"

	"github.com/blueprintmrk/graphy/pkg/chart"
)

// Encoding selects the chd data encoding.
type Encoding int

const (
	// EncodingSimple packs each point into one of 62 levels (chd=s:).
	EncodingSimple Encoding = iota
	// EncodingExtended packs each point into one of 4096 levels (chd=e:).
	EncodingExtended
)

const (
	simpleChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	extendedChars = simpleChars + "-."
)

// ParseEncoding maps the "encoding" option value to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "", "simple":
		return EncodingSimple, nil
	case "extended", "enhanced":
		return EncodingExtended, nil
	}
	return 0, fmt.Errorf("unknown data encoding %q", name)
}

func (e Encoding) String() string {
	if e == EncodingExtended {
		return "extended"
	}
	return "simple"
}

func (e Encoding) prefix() string {
	if e == EncodingExtended {
		return "e:"
	}
	return "s:"
}

func (e Encoding) levels() int {
	if e == EncodingExtended {
		return 4096
	}
	return len(simpleChars)
}

func (e Encoding) encodePoint(scaled int) string {
	if e == EncodingExtended {
		return string(extendedChars[scaled/64]) + string(extendedChars[scaled%64])
	}
	return string(simpleChars[scaled])
}

func (e Encoding) missing() string {
	if e == EncodingExtended {
		return "__"
	}
	return "_"
}

// encodeData scales each series into [min, max] and encodes it, returning
// the full chd parameter value including the encoding prefix. Values
// outside the range clip to the nearest end.
func encodeData(series [][]chart.Point, min, max float64, enc Encoding) string {
	top := enc.levels() - 1
	span := max - min
	encoded := make([]string, 0, len(series))
	for _, points := range series {
		var b strings.Builder
		for _, p := range points {
			if p.Missing {
				b.WriteString(enc.missing())
				continue
			}
			scaled := 0
			if span > 0 {
				scaled = int(math.Round((p.Value - min) / span * float64(top)))
			}
			if scaled < 0 {
				scaled = 0
			} else if scaled > top {
				scaled = top
			}
			b.WriteString(enc.encodePoint(scaled))
		}
		encoded = append(encoded, b.String())
	}
	return enc.prefix() + strings.Join(encoded, ",")
}
