package convert

import (
	"fmt"
	"log/slog"

	"tomgalvin.uk/imgarray/internal/bitmap"
)

// Options is the configuration of one conversion. It is passed by value and
// never changes while a conversion runs.
type Options struct {
	Threshold bitmap.Threshold
	Mode      bitmap.Mode
	Invert    bool
	// Pack 8 pixels into each byte
	Compact bool
	// Only meaningful with Compact
	FlipBits bool
	// Draw a preview of each row on the console
	Print      bool
	AutoOrient bool
}

func DefaultOptions() Options {
	return Options{
		Threshold: bitmap.DefaultThreshold,
		Mode:      bitmap.PerChannel,
	}
}

func (o Options) Classifier() bitmap.Classifier {
	return bitmap.Classifier{
		Threshold: o.Threshold,
		Invert:    o.Invert,
		Mode:      o.Mode,
	}
}

func (o Options) BitOrder() bitmap.BitOrder {
	if o.FlipBits {
		return bitmap.MSBFirst
	}
	return bitmap.LSBFirst
}

func (o Options) Validate() error {
	switch o.Mode {
	case bitmap.PerChannel, bitmap.Sum:
	default:
		return fmt.Errorf("Invalid threshold mode %v", o.Mode)
	}
	return nil
}

func (o Options) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("threshold", []uint8{o.Threshold.R, o.Threshold.G, o.Threshold.B}),
		slog.String("mode", o.Mode.String()),
		slog.Bool("invert", o.Invert),
		slog.Bool("compact", o.Compact),
		slog.Bool("flipBits", o.FlipBits),
		slog.Bool("print", o.Print),
		slog.Bool("autoOrient", o.AutoOrient),
	)
}
