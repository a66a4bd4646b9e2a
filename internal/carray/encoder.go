// This package writes a monochrome image as a C source file declaring a
// fixed-size uint8_t array, ready to be included in a firmware build:
//
//	#include <inttypes.h>
//
//	#define IMG_WIDTH 2
//	#define IMG_HEIGHT 2
//
//	static const uint8_t img[IMG_HEIGHT][IMG_WIDTH] = {
//	    { 1, 1 },
//	    { 1, 1 }
//	};
//
// The layout is byte-for-byte stable since existing builds include the
// generated file as-is.
package carray

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const bitsPerByte = 8

var (
	ErrRowLength = errors.New("Row length doesn't match IMG_WIDTH")
	ErrRowCount  = errors.New("Row count doesn't match IMG_HEIGHT")
)

// Encoder streams rows of an image into the C array layout. Rows are written
// in order; Close finishes the document.
type Encoder struct {
	w       *bufio.Writer
	width   int
	height  int
	compact bool
	rows    int
	started bool
	err     error
}

// NewEncoder creates an encoder for an image widthPixels wide and height rows
// tall. In compact mode each row holds widthPixels/8 packed bytes, otherwise
// one 0/1 value per pixel.
func NewEncoder(w io.Writer, widthPixels int, height int, compact bool) *Encoder {
	width := widthPixels
	if compact {
		width = widthPixels / bitsPerByte
	}
	return &Encoder{
		w:       bufio.NewWriter(w),
		width:   width,
		height:  height,
		compact: compact,
	}
}

// Width is the value of IMG_WIDTH: bytes per row in compact mode, pixels
// per row otherwise.
func (e *Encoder) Width() int {
	return e.width
}

func (e *Encoder) Height() int {
	return e.height
}

func (e *Encoder) writeHeader() {
	if e.started {
		return
	}
	e.started = true
	_, e.err = fmt.Fprintf(e.w,
		"#include <inttypes.h>\n\n#define IMG_WIDTH %d\n#define IMG_HEIGHT %d\n\nstatic const uint8_t img[IMG_HEIGHT][IMG_WIDTH] = {\n",
		e.width, e.height,
	)
}

// WriteRow writes the next row of the array.
func (e *Encoder) WriteRow(values []byte) error {
	if e.err != nil {
		return e.err
	}
	if len(values) != e.width {
		return fmt.Errorf("%w (got %v values, expecting %v)", ErrRowLength, len(values), e.width)
	}
	if e.rows >= e.height {
		return fmt.Errorf("%w (row %v of %v)", ErrRowCount, e.rows+1, e.height)
	}

	e.writeHeader()
	if e.err != nil {
		return e.err
	}

	valueFormat := "%d"
	if e.compact {
		valueFormat = "%3d"
	}

	e.w.WriteString("    { ")
	for x, v := range values {
		fmt.Fprintf(e.w, valueFormat, v)
		if x+1 != len(values) {
			e.w.WriteString(", ")
		}
	}
	e.rows++
	if e.rows == e.height {
		_, e.err = e.w.WriteString(" }\n")
	} else {
		_, e.err = e.w.WriteString(" },\n")
	}
	return e.err
}

// Close writes the closing brace and flushes. It fails if fewer rows than
// IMG_HEIGHT were written. It doesn't close the underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if e.rows != e.height {
		return fmt.Errorf("%w (wrote %v, expecting %v)", ErrRowCount, e.rows, e.height)
	}

	e.writeHeader()
	if e.err != nil {
		return e.err
	}
	if _, e.err = e.w.WriteString("};\n"); e.err != nil {
		return e.err
	}
	e.err = e.w.Flush()
	return e.err
}

// Render builds the whole document in memory from already packed rows.
func Render(widthPixels int, height int, compact bool, rows [][]byte) (string, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, widthPixels, height, compact)
	for y, row := range rows {
		if err := e.WriteRow(row); err != nil {
			return "", fmt.Errorf("Couldn't write row %v:\n%w", y, err)
		}
	}
	if err := e.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
