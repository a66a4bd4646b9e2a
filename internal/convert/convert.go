// Package convert runs the image to C array pipeline: decode, build the
// pixel grid, classify each row, hand the row to any observers, pack it and
// emit it.
package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tomgalvin.uk/imgarray/internal/bitmap"
	"tomgalvin.uk/imgarray/internal/carray"
	"tomgalvin.uk/imgarray/internal/decode"
)

var (
	ErrOutputCreate = errors.New("Couldn't create output file")
	ErrOutputWrite  = errors.New("Couldn't write output file")
)

// RowObserver receives each classified row, one 0/1 value per pixel, before
// it is packed. The slice is reused for the next row.
type RowObserver interface {
	ObserveRow(y int, bits []byte) error
}

// Load decodes the input image and reshapes it into a grid. Every input
// error surfaces here, before any output exists.
func Load(path string, o Options) (*bitmap.Grid, error) {
	img, err := decode.Open(path, o.AutoOrient)
	if err != nil {
		return nil, err
	}

	g, err := bitmap.NewGrid(img.Pix, img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("Couldn't build pixel grid for %s:\n%w", path, err)
	}
	return g, nil
}

// Check rejects grids the options can't be applied to.
func Check(g *bitmap.Grid, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Compact {
		return bitmap.CheckCompact(g.Width())
	}
	return nil
}

// Render streams the grid as a C array to w, one row at a time.
func Render(w io.Writer, g *bitmap.Grid, o Options, observers ...RowObserver) error {
	if err := Check(g, o); err != nil {
		return err
	}

	b := bitmap.NewThresholdBitmap(g, o.Classifier())
	e := carray.NewEncoder(w, g.Width(), g.Height(), o.Compact)
	order := o.BitOrder()

	var bits, packed []byte
	for y, h := 0, g.Height(); y < h; y++ {
		bits = b.Row(y, bits)

		for _, obs := range observers {
			if err := obs.ObserveRow(y, bits); err != nil {
				return fmt.Errorf("Couldn't pass row %v to observer:\n%w", y, err)
			}
		}

		values := bits
		if o.Compact {
			var err error
			if packed, err = bitmap.PackRow(packed, bits, order); err != nil {
				return err
			}
			values = packed
		}

		if err := e.WriteRow(values); err != nil {
			return fmt.Errorf("%w (row %v):\n%w", ErrOutputWrite, y, err)
		}
	}

	if err := e.Close(); err != nil {
		return fmt.Errorf("%w:\n%w", ErrOutputWrite, err)
	}
	return nil
}

// WriteFile renders the grid into path. The document goes to a temporary file
// next to path which is renamed into place once complete, so a failed
// conversion never leaves a partial file behind.
func WriteFile(path string, g *bitmap.Grid, o Options, observers ...RowObserver) (err error) {
	if err := Check(g, o); err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s:\n%w", ErrOutputCreate, path, err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		return fmt.Errorf("%w %s:\n%w", ErrOutputCreate, path, err)
	}

	slog.Debug("Writing array", "path", path, "tmp", tmp, "grid", g.String())
	if err = Render(f, g, o, observers...); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("%w %s:\n%w", ErrOutputWrite, path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w %s:\n%w", ErrOutputWrite, path, err)
	}
	return nil
}

// Run converts the image at input into a C array at output.
func Run(input string, output string, o Options, observers ...RowObserver) error {
	g, err := Load(input, o)
	if err != nil {
		return err
	}
	if err := Check(g, o); err != nil {
		return err
	}
	return WriteFile(output, g, o, observers...)
}
