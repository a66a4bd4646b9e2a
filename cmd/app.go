// Package cmd is the imgarray command line: converting images and managing
// saved presets.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"

	"tomgalvin.uk/imgarray/internal/config"
	"tomgalvin.uk/imgarray/internal/convert"
	"tomgalvin.uk/imgarray/internal/preset"
	"tomgalvin.uk/imgarray/internal/preview"
)

type App struct {
	Stdout io.Writer
	Stderr io.Writer
	// Opens the preset database, creating it if needed
	OpenRepository func(path string) (*preset.Repository, error)
}

// Run executes one command and returns the process exit code.
func (a *App) Run(args []string) int {
	if len(args) > 0 && args[0] == "preset" {
		return a.runPreset(args[1:])
	}
	return a.runConvert(args)
}

func (a *App) setupLogging(debug bool) {
	w := a.Stderr
	if f, ok := w.(*os.File); ok {
		w = colorable.NewColorable(f)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// parseFlags returns the exit code to stop with, or -1 to carry on.
func (a *App) parseFlags(f *flags, args []string) int {
	if err := f.parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	a.setupLogging(f.debug)
	return -1
}

type settings struct {
	config  config.Config
	options convert.Options
	color   preview.ColorMode
}

// resolve merges the defaults, the config file, the chosen preset and the
// command line, later sources winning.
func (a *App) resolve(f *flags) (settings, error) {
	var s settings
	c, err := f.loadConfig()
	if err != nil {
		return s, err
	}
	s.config = c

	o, err := c.Options()
	if err != nil {
		return s, fmt.Errorf("Invalid config:\n%w", err)
	}

	if f.set["preset"] {
		r, err := a.openPresets(c)
		if err != nil {
			return s, err
		}
		defer r.Close()

		p, err := r.Get(f.preset)
		if err != nil {
			return s, fmt.Errorf("Couldn't load preset %s:\n%w", f.preset, err)
		}
		if p == nil {
			return s, fmt.Errorf("No preset named %s", f.preset)
		}
		slog.Debug("Using preset", "name", p.Name, "uuid", p.Uuid)
		o = p.Options
	}

	if s.options, err = f.apply(o); err != nil {
		return s, err
	}
	if s.color, err = f.colorMode(c); err != nil {
		return s, err
	}
	return s, nil
}

func (a *App) openPresets(c config.Config) (*preset.Repository, error) {
	if a.OpenRepository == nil {
		return nil, errors.New("Presets aren't available")
	}
	path, err := c.DatabasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("Couldn't create preset directory:\n%w", err)
	}
	slog.Debug("Opening preset database", "path", path)
	return a.OpenRepository(path)
}
