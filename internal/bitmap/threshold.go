package bitmap

import (
	"fmt"
	"strings"
)

// Threshold holds a per-channel cutoff. A channel is "on" when it is
// strictly greater than its cutoff.
type Threshold struct {
	R, G, B uint8
}

var DefaultThreshold = Threshold{127, 127, 127}

// Mode selects how a pixel is compared against the threshold.
type Mode byte

const (
	// Every channel must exceed its own cutoff.
	PerChannel Mode = iota
	// The channel sum must exceed 1.5*255; the threshold triple is unused.
	Sum
)

// R+G+B > 382.5 is the same as R+G+B > 382 for integer sums.
const sumCutoff = 382

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "channel", "per-channel":
		return PerChannel, nil
	case "sum":
		return Sum, nil
	default:
		return 0, fmt.Errorf(`Unrecognised threshold mode "%s"`, s)
	}
}

func (m Mode) String() string {
	switch m {
	case PerChannel:
		return "channel"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Classify reports whether every channel of p is strictly greater than the
// matching channel of t, negated when invert is set.
func Classify(p Pixel, t Threshold, invert bool) bool {
	on := p.R > t.R && p.G > t.G && p.B > t.B
	return on != invert
}

// Classifier is the fixed configuration used to turn pixels into bits for a
// whole conversion.
type Classifier struct {
	Threshold Threshold
	Invert    bool
	Mode      Mode
}

func (c Classifier) Classify(p Pixel) bool {
	if c.Mode == Sum {
		on := int(p.R)+int(p.G)+int(p.B) > sumCutoff
		return on != c.Invert
	}
	return Classify(p, c.Threshold, c.Invert)
}
