package cmd

import (
	"flag"
	"fmt"
	"io"

	"tomgalvin.uk/imgarray/internal/bitmap"
	"tomgalvin.uk/imgarray/internal/config"
	"tomgalvin.uk/imgarray/internal/convert"
	"tomgalvin.uk/imgarray/internal/preview"
)

// short flag name -> long flag name
var aliases = map[string]string{
	"c": "compact",
	"f": "flip-bits",
	"i": "invert",
	"p": "print",
	"d": "debug",
	"r": "red",
	"g": "green",
	"b": "blue",
}

type flags struct {
	fs *flag.FlagSet

	compact    bool
	flipBits   bool
	invert     bool
	print      bool
	debug      bool
	autoOrient bool
	red        int
	green      int
	blue       int
	mode       string
	color      string
	config     string
	preset     string
	db         string

	// long names of the flags given on the command line
	set  map[string]bool
	args []string
}

func newFlags(name string, usage string, stderr io.Writer) *flags {
	f := &flags{
		fs:  flag.NewFlagSet(name, flag.ContinueOnError),
		set: map[string]bool{},
	}
	fs := f.fs
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}

	t := bitmap.DefaultThreshold
	boolFlag := func(p *bool, short, long, help string) {
		fs.BoolVar(p, long, false, help)
		if short != "" {
			fs.BoolVar(p, short, false, "Shorthand for --"+long)
		}
	}
	intFlag := func(p *int, short, long string, value uint8, help string) {
		fs.IntVar(p, long, int(value), help)
		fs.IntVar(p, short, int(value), "Shorthand for --"+long)
	}

	boolFlag(&f.compact, "c", "compact", "Pack 8 pixels into each byte")
	boolFlag(&f.flipBits, "f", "flip-bits", "Put the leftmost pixel in the most significant bit (with --compact)")
	boolFlag(&f.invert, "i", "invert", "Invert the output")
	boolFlag(&f.print, "p", "print", "Print a preview of the image to the console")
	boolFlag(&f.debug, "d", "debug", "Log debug information")
	boolFlag(&f.autoOrient, "", "auto-orient", "Rotate the image according to its EXIF orientation")
	intFlag(&f.red, "r", "red", t.R, "Red channel threshold (0-255)")
	intFlag(&f.green, "g", "green", t.G, "Green channel threshold (0-255)")
	intFlag(&f.blue, "b", "blue", t.B, "Blue channel threshold (0-255)")
	fs.StringVar(&f.mode, "mode", bitmap.PerChannel.String(), "Threshold mode: channel or sum")
	fs.StringVar(&f.color, "color", preview.ColorAuto.String(), "Colour the preview: auto, on or off")
	fs.StringVar(&f.config, "config", "", "Config file (default: config.toml in the user config directory)")
	fs.StringVar(&f.preset, "preset", "", "Start from the options of a saved preset")
	fs.StringVar(&f.db, "db", "", "Preset database (default: presets.db in the user config directory)")

	return f
}

// parse reads flags and positional arguments in any order.
func (f *flags) parse(args []string) error {
	for {
		if err := f.fs.Parse(args); err != nil {
			return err
		}
		args = f.fs.Args()
		if len(args) == 0 {
			break
		}
		f.args = append(f.args, args[0])
		args = args[1:]
	}

	f.fs.Visit(func(fl *flag.Flag) {
		name := fl.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		f.set[name] = true
	})
	return nil
}

func (f *flags) loadConfig() (config.Config, error) {
	var c config.Config
	var err error
	if f.set["config"] {
		c, err = config.Load(f.config)
	} else {
		c, err = config.LoadDefault()
	}
	if err != nil {
		return c, err
	}
	if f.set["db"] {
		c.Database = f.db
	}
	return c, nil
}

// apply overrides o with the flags given on the command line.
func (f *flags) apply(o convert.Options) (convert.Options, error) {
	if f.set["compact"] {
		o.Compact = f.compact
	}
	if f.set["flip-bits"] {
		o.FlipBits = f.flipBits
	}
	if f.set["invert"] {
		o.Invert = f.invert
	}
	if f.set["print"] {
		o.Print = f.print
	}
	if f.set["auto-orient"] {
		o.AutoOrient = f.autoOrient
	}
	if f.set["mode"] {
		m, err := bitmap.ParseMode(f.mode)
		if err != nil {
			return o, err
		}
		o.Mode = m
	}

	t := config.Threshold{
		Red:   int(o.Threshold.R),
		Green: int(o.Threshold.G),
		Blue:  int(o.Threshold.B),
	}
	if f.set["red"] {
		t.Red = f.red
	}
	if f.set["green"] {
		t.Green = f.green
	}
	if f.set["blue"] {
		t.Blue = f.blue
	}
	th, err := config.ParseThreshold(t)
	if err != nil {
		return o, err
	}
	o.Threshold = th

	return o, o.Validate()
}

func (f *flags) colorMode(c config.Config) (preview.ColorMode, error) {
	if f.set["color"] {
		return preview.ParseColorMode(f.color)
	}
	return c.Color, nil
}
