// Package preview draws thresholded rows on a console so the result can be
// eyeballed while converting. On pixels are an X, off pixels a space.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
)

type ColorMode byte

const (
	ColorAuto ColorMode = iota
	ColorOn
	ColorOff
)

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "on", "always":
		return ColorOn, nil
	case "off", "never":
		return ColorOff, nil
	default:
		return 0, fmt.Errorf(`Unrecognised colour mode "%s"`, s)
	}
}

func (c ColorMode) String() string {
	switch c {
	case ColorOn:
		return "on"
	case ColorOff:
		return "off"
	default:
		return "auto"
	}
}

func (c ColorMode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var glyphs = [2]struct{ off, on string }{
	// plain
	{" ", "X"},
	// coloured: on pixels in reverse video
	{" ", "\033[7mX\033[0m"},
}

// Console writes one line per observed row.
type Console struct {
	w     *bufio.Writer
	color int
}

// New creates a console preview on w. When w is a terminal it goes through
// go-colorable so escape sequences also work on Windows consoles, and
// ColorAuto turns colour on.
func New(w io.Writer, mode ColorMode) *Console {
	useColor := mode == ColorOn
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			w = colorable.NewColorable(f)
			if mode == ColorAuto {
				useColor = true
			}
		}
	}

	c := &Console{w: bufio.NewWriter(w)}
	if useColor {
		c.color = 1
	}
	return c
}

// ObserveRow draws a row of 0/1 values left to right.
func (c *Console) ObserveRow(y int, bits []byte) error {
	g := glyphs[c.color]
	for _, bit := range bits {
		if bit != 0 {
			c.w.WriteString(g.on)
		} else {
			c.w.WriteString(g.off)
		}
	}
	c.w.WriteByte('\n')
	return c.w.Flush()
}
