package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"tomgalvin.uk/imgarray/internal/bitmap"
	"tomgalvin.uk/imgarray/internal/convert"
	"tomgalvin.uk/imgarray/internal/decode"
	"tomgalvin.uk/imgarray/internal/preview"
)

func (a *App) runConvert(args []string) int {
	f := newFlags("imgarray", "imgarray [flags] INPUT OUTPUT\n       imgarray preset save|list|show|delete [NAME]", a.Stderr)
	if code := a.parseFlags(f, args); code >= 0 {
		return code
	}
	if len(f.args) != 2 {
		slog.Error("Expected an input image and an output file", "args", f.args)
		f.fs.Usage()
		return 1
	}
	input, output := f.args[0], f.args[1]

	s, err := a.resolve(f)
	if err != nil {
		slog.Error("Invalid options", "err", err)
		return 1
	}
	o := s.options
	slog.Debug("Converting", "input", input, "output", output, "options", o)
	if o.FlipBits && !o.Compact {
		slog.Warn("Flipping bits has no effect without compact output")
	}

	var observers []convert.RowObserver
	if o.Print {
		observers = append(observers, preview.New(a.Stdout, s.color))
	}

	if err := convert.Run(input, output, o, observers...); err != nil {
		slog.Error(stage(err), "err", err)
		return 1
	}

	fmt.Fprintf(a.Stdout, "Done! Output saved to %q\n", output)
	return 0
}

// stage names the part of the conversion an error came from.
func stage(err error) string {
	switch {
	case errors.Is(err, decode.ErrInputOpen), errors.Is(err, decode.ErrDecode):
		return "Couldn't read input image"
	case errors.Is(err, bitmap.ErrBufferLength):
		return "Couldn't interpret image pixels"
	case errors.Is(err, bitmap.ErrCompactDivisibility):
		return "Image can't be compacted"
	case errors.Is(err, convert.ErrOutputCreate), errors.Is(err, convert.ErrOutputWrite):
		return "Couldn't write output"
	default:
		return "Conversion failed"
	}
}
