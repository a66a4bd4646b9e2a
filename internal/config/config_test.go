package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tomgalvin.uk/imgarray/internal/bitmap"
	"tomgalvin.uk/imgarray/internal/preview"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
compact = true
flip_bits = true
mode = "sum"
color = "off"
database = "store.db"

[threshold]
red = 10
blue = 200
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !c.Compact || !c.FlipBits || c.Invert {
		t.Errorf("flags = %+v", c)
	}
	if c.Mode != bitmap.Sum {
		t.Errorf("Mode = %v, want sum", c.Mode)
	}
	if c.Color != preview.ColorOff {
		t.Errorf("Color = %v, want off", c.Color)
	}
	// unset keys keep their defaults
	want := Threshold{Red: 10, Green: 127, Blue: 200}
	if c.Threshold != want {
		t.Errorf("Threshold = %+v, want %+v", c.Threshold, want)
	}
	if c.Database != filepath.Join(filepath.Dir(path), "store.db") {
		t.Errorf("Database = %q, want it next to the config file", c.Database)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "compactt = true\n"},
		{"bad mode", "mode = \"luminance\"\n"},
		{"bad colour", "color = \"rainbow\"\n"},
		{"not toml", "compact = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestOptions(t *testing.T) {
	c := Default()
	c.Compact = true
	c.Threshold = Threshold{1, 2, 3}

	o, err := c.Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if !o.Compact {
		t.Error("Compact = false, want true")
	}
	if o.Threshold != (bitmap.Threshold{R: 1, G: 2, B: 3}) {
		t.Errorf("Threshold = %v, want {1 2 3}", o.Threshold)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o, err := Default().Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if o.Threshold != bitmap.DefaultThreshold || o.Mode != bitmap.PerChannel {
		t.Errorf("Options() = %+v, want default threshold and per-channel mode", o)
	}
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name    string
		in      Threshold
		wantErr bool
	}{
		{"defaults", Threshold{127, 127, 127}, false},
		{"bounds", Threshold{0, 255, 0}, false},
		{"red too big", Threshold{256, 0, 0}, true},
		{"green negative", Threshold{0, -1, 0}, true},
		{"blue too big", Threshold{0, 0, 1000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThreshold(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseThreshold(%+v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	c := Default()
	c.Database = "/tmp/presets.db"
	if got, _ := c.DatabasePath(); got != "/tmp/presets.db" {
		t.Errorf("DatabasePath() = %q, want /tmp/presets.db", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	o, err := Default().Options()
	if err != nil {
		t.Fatal(err)
	}
	o.Compact = true
	o.Mode = bitmap.Sum
	o.Threshold.G = 42

	var sb strings.Builder
	if err := FromOptions(o, preview.ColorOn).Write(&sb); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	c, err := Load(writeConfig(t, sb.String()))
	if err != nil {
		t.Fatalf("Load() error = %v\n%s", err, sb.String())
	}
	got, err := c.Options()
	if err != nil {
		t.Fatal(err)
	}
	if got != o {
		t.Errorf("round trip = %+v, want %+v", got, o)
	}
	if c.Color != preview.ColorOn {
		t.Errorf("Color = %v, want on", c.Color)
	}
}
