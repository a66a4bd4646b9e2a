// This package defines an interface for a simple bitmap structure that has a
// width, height, and can get bits from the bitmap by (x,y) coordinate.
// Bits come from classifying the RGB pixels of a Grid against a threshold
// (ThresholdBitmap), and can be packed 8 pixels to a byte (PackedBitmap),
// which is the layout emitted for monochrome displays.
package bitmap

import (
	"fmt"
)

type Bitmap interface {
	Width() int
	Height() int
	GetBit(x int, y int) byte
}

// ThresholdBitmap is a read-only view over a Grid which classifies each
// pixel when it is read. Nothing is cached.
type ThresholdBitmap struct {
	grid       *Grid
	classifier Classifier
}

func NewThresholdBitmap(g *Grid, c Classifier) *ThresholdBitmap {
	return &ThresholdBitmap{grid: g, classifier: c}
}

func (b *ThresholdBitmap) Width() int {
	return b.grid.Width()
}

func (b *ThresholdBitmap) Height() int {
	return b.grid.Height()
}

func (b *ThresholdBitmap) GetBit(x int, y int) byte {
	if b.classifier.Classify(b.grid.At(x, y)) {
		return 1
	}
	return 0
}

// Row classifies row y left to right into dst, reusing its storage when it
// is large enough, and returns one 0/1 value per pixel.
func (b *ThresholdBitmap) Row(y int, dst []byte) []byte {
	pixels := b.grid.Row(y)
	if cap(dst) < len(pixels) {
		dst = make([]byte, len(pixels))
	}
	dst = dst[:len(pixels)]

	for x, p := range pixels {
		if b.classifier.Classify(p) {
			dst[x] = 1
		} else {
			dst[x] = 0
		}
	}
	return dst
}

func (b *ThresholdBitmap) String() string {
	return fmt.Sprintf("ThresholdBitmap(%d,%d)", b.Width(), b.Height())
}
