package bitmap

import (
	"errors"
	"fmt"
)

// Pixel is a single 8-bit-per-channel RGB triple.
type Pixel struct {
	R, G, B uint8
}

const bytesPerPixel = 3

var (
	ErrBufferLength      = errors.New("Decoded buffer doesn't hold an RGB image")
	ErrFormat            = fmt.Errorf("%w: length is not a multiple of %d", ErrBufferLength, bytesPerPixel)
	ErrDimensionMismatch = fmt.Errorf("%w: length doesn't match image dimensions", ErrBufferLength)
)

// Grid is a row-major 2D grid of pixels. Every row holds exactly width
// pixels and there are exactly height rows.
type Grid struct {
	pixels        [][]Pixel
	width, height int
}

// NewGrid reshapes a flat buffer of RGB triples into a Grid. The pixel at
// (row, col) is the triple starting at offset (row*width+col)*3.
func NewGrid(buf []byte, width int, height int) (*Grid, error) {
	if len(buf)%bytesPerPixel != 0 {
		return nil, fmt.Errorf("%w (got %v bytes)", ErrFormat, len(buf))
	}
	if width < 0 || height < 0 || len(buf) != width*height*bytesPerPixel {
		return nil, fmt.Errorf("%w (got %v, expecting %v*%v*%v=%v)",
			ErrDimensionMismatch,
			len(buf),
			width,
			height,
			bytesPerPixel,
			width*height*bytesPerPixel,
		)
	}

	pixels := make([][]Pixel, height)
	for y := 0; y < height; y++ {
		row := make([]Pixel, width)
		for x := 0; x < width; x++ {
			i := (y*width + x) * bytesPerPixel
			row[x] = Pixel{buf[i], buf[i+1], buf[i+2]}
		}
		pixels[y] = row
	}

	return &Grid{pixels, width, height}, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) At(x int, y int) Pixel {
	return g.pixels[y][x]
}

// Row returns row y. The slice is shared with the grid and must not be
// modified.
func (g *Grid) Row(y int) []Pixel {
	return g.pixels[y]
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%d,%d)", g.width, g.height)
}
