// Package config loads default conversion settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tomgalvin.uk/imgarray/internal/bitmap"
	"tomgalvin.uk/imgarray/internal/convert"
	"tomgalvin.uk/imgarray/internal/preview"
)

const appName = "imgarray"

type Threshold struct {
	Red   int `toml:"red"`
	Green int `toml:"green"`
	Blue  int `toml:"blue"`
}

type Config struct {
	Compact    bool              `toml:"compact"`
	FlipBits   bool              `toml:"flip_bits"`
	Invert     bool              `toml:"invert"`
	Print      bool              `toml:"print"`
	AutoOrient bool              `toml:"auto_orient"`
	Mode       bitmap.Mode       `toml:"mode"`
	Color      preview.ColorMode `toml:"color"`
	// Preset database, defaults to presets.db in the user config directory
	Database  string    `toml:"database,omitempty"`
	Threshold Threshold `toml:"threshold"`
}

func Default() Config {
	t := bitmap.DefaultThreshold
	return Config{
		Mode:      bitmap.PerChannel,
		Color:     preview.ColorAuto,
		Threshold: Threshold{int(t.R), int(t.G), int(t.B)},
	}
}

// Dir is the per-user directory holding the config file and preset database.
func Dir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("Couldn't find user config directory:\n%w", err)
	}
	return filepath.Join(d, appName), nil
}

// DefaultPath is where the config file is looked for when none is given.
func DefaultPath() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.toml"), nil
}

// Load decodes the file at path on top of the defaults. Keys that aren't
// part of the config are rejected so typos don't go unnoticed.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("Couldn't read config %s:\n%w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("Unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}

	if c.Database != "" && !filepath.IsAbs(c.Database) {
		c.Database = filepath.Join(filepath.Dir(path), c.Database)
	}
	return c, nil
}

// LoadDefault loads the config file from DefaultPath, falling back to the
// defaults if there isn't one.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// DatabasePath resolves where presets are stored.
func (c Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "presets.db"), nil
}

func channel(name string, v int) (uint8, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("%s threshold must be between 0 and 255 (got %v)", name, v)
	}
	return uint8(v), nil
}

// ParseThreshold checks each channel is in 0-255.
func ParseThreshold(t Threshold) (bitmap.Threshold, error) {
	var th bitmap.Threshold
	var err error
	if th.R, err = channel("Red", t.Red); err != nil {
		return th, err
	}
	if th.G, err = channel("Green", t.Green); err != nil {
		return th, err
	}
	if th.B, err = channel("Blue", t.Blue); err != nil {
		return th, err
	}
	return th, nil
}

// Options turns the config into conversion options.
func (c Config) Options() (convert.Options, error) {
	th, err := ParseThreshold(c.Threshold)
	if err != nil {
		return convert.Options{}, err
	}
	o := convert.Options{
		Threshold:  th,
		Mode:       c.Mode,
		Invert:     c.Invert,
		Compact:    c.Compact,
		FlipBits:   c.FlipBits,
		Print:      c.Print,
		AutoOrient: c.AutoOrient,
	}
	return o, o.Validate()
}

// FromOptions is the inverse of Options, so a set of options can be written
// back out as a config file.
func FromOptions(o convert.Options, color preview.ColorMode) Config {
	return Config{
		Compact:    o.Compact,
		FlipBits:   o.FlipBits,
		Invert:     o.Invert,
		Print:      o.Print,
		AutoOrient: o.AutoOrient,
		Mode:       o.Mode,
		Color:      color,
		Threshold: Threshold{
			Red:   int(o.Threshold.R),
			Green: int(o.Threshold.G),
			Blue:  int(o.Threshold.B),
		},
	}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("Couldn't encode config:\n%w", err)
	}
	return nil
}
