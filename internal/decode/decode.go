// Package decode turns an image file into a flat buffer of RGB triples.
//
// PNG, JPEG and GIF are read by the standard library decoders, BMP, TIFF and
// WebP by golang.org/x/image. Decoding goes through imaging so that EXIF
// orientation can be applied. Alpha is dropped; the straight colour of each
// pixel is kept.
package decode

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInputOpen = errors.New("Couldn't open input image")
	ErrDecode    = errors.New("Couldn't decode input image")
)

// Image is a decoded image as row-major RGB triples.
type Image struct {
	Width, Height int
	Format        string
	Pix           []byte
}

// Open reads and decodes the image at path.
func Open(path string, autoOrient bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s:\n%w", ErrInputOpen, path, err)
	}
	defer f.Close()

	return Decode(f, autoOrient)
}

// Decode reads an image in any registered format from r.
func Decode(r io.Reader, autoOrient bool) (*Image, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return decode(r, autoOrient, "")
	}

	// sniff the format first so it can be logged, then rewind for the decode
	_, format, err := image.DecodeConfig(rs)
	if err != nil {
		return nil, fmt.Errorf("%w:\n%w", ErrDecode, err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w:\n%w", ErrDecode, err)
	}
	return decode(rs, autoOrient, format)
}

func decode(r io.Reader, autoOrient bool, format string) (*Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(autoOrient))
	if err != nil {
		return nil, fmt.Errorf("%w:\n%w", ErrDecode, err)
	}

	i := FromImage(img)
	i.Format = format
	slog.Debug("Decoded image",
		"format", format,
		"width", i.Width,
		"height", i.Height,
		"autoOrient", autoOrient,
	)
	return i, nil
}

// FromImage flattens any image.Image into RGB triples.
func FromImage(img image.Image) *Image {
	nrgba := imaging.Clone(img)
	width, height := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x], row[x+1], row[x+2])
		}
	}

	return &Image{Width: width, Height: height, Pix: pix}
}
