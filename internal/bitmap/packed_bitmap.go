// This file implements methods to pack bitmap pixel data 8 pixels to a byte,
// the layout monochrome display drivers expect for each row of an image.

package bitmap

import (
	"errors"
	"fmt"
)

// BitOrder decides which pixel of a group of 8 lands in which bit of the
// packed byte. It only affects bit placement, never the pixel order.
type BitOrder byte

const (
	// Pixel 0 of a group is bit 0 (least significant), pixel 7 is bit 7.
	LSBFirst BitOrder = iota
	// Pixel 0 of a group is bit 7 (most significant), pixel 7 is bit 0.
	MSBFirst
)

func (o BitOrder) String() string {
	if o == MSBFirst {
		return "msb-first"
	}
	return "lsb-first"
}

const bitsPerWord = 8

var ErrCompactDivisibility = errors.New("Image width is not a multiple of 8")

// CheckCompact rejects widths that can't be packed into whole bytes.
func CheckCompact(width int) error {
	if width%bitsPerWord != 0 {
		return fmt.Errorf("%w (got width %v)", ErrCompactDivisibility, width)
	}
	return nil
}

// Which bit of its byte pixel x ends up in.
func bitShift(x int, order BitOrder) uint {
	i := uint(x % bitsPerWord)
	if order == MSBFirst {
		return bitsPerWord - 1 - i
	}
	return i
}

// PackRow packs a row of 0/1 values into bytes, appending to dst[:0].
// The row length must be a multiple of 8.
func PackRow(dst []byte, bits []byte, order BitOrder) ([]byte, error) {
	if err := CheckCompact(len(bits)); err != nil {
		return nil, err
	}

	dst = dst[:0]
	var p byte = 0
	for x, bit := range bits {
		p |= (bit & 1) << bitShift(x, order)
		if x%bitsPerWord == bitsPerWord-1 {
			dst = append(dst, p)
			p = 0
		}
	}
	return dst, nil
}

// a bitmap packed in memory
type PackedBitmap struct {
	data                  []byte
	width, height, stride int
	order                 BitOrder
}

func (b *PackedBitmap) Width() int {
	return b.width
}

func (b *PackedBitmap) Height() int {
	return b.height
}

func (b *PackedBitmap) Stride() int {
	return b.stride
}

func (b *PackedBitmap) Order() BitOrder {
	return b.order
}

func (b *PackedBitmap) Data() []byte {
	return b.data
}

// Row returns the packed bytes of row y.
func (b *PackedBitmap) Row(y int) []byte {
	return b.data[y*b.stride : (y+1)*b.stride]
}

// Gets a single bit from the bitmap at the (x, y) coordinate, returns either 0 or 1
func (b *PackedBitmap) GetBit(x int, y int) byte {
	index := (y * b.stride) + (x / bitsPerWord)
	return (b.data[index] >> bitShift(x, b.order)) & 1
}

func (b *PackedBitmap) String() string {
	return fmt.Sprintf("PackedBitmap(%d,%d,%s)", b.width, b.height, b.order)
}

// Take data from any Bitmap implementation and pack it 8 pixels to a byte.
func PackBitmap(b Bitmap, order BitOrder) (*PackedBitmap, error) {
	width, height := b.Width(), b.Height()
	if err := CheckCompact(width); err != nil {
		return nil, err
	}
	stride := width / bitsPerWord
	data := make([]byte, 0, stride*height)

	bits := make([]byte, width)
	row := make([]byte, 0, stride)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bits[x] = b.GetBit(x, y)
		}
		var err error
		if row, err = PackRow(row, bits, order); err != nil {
			return nil, err
		}
		data = append(data, row...)
	}

	return &PackedBitmap{data, width, height, stride, order}, nil
}
