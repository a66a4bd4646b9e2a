package bitmap

import (
	"math/rand"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		pixel     Pixel
		threshold Threshold
		want      bool
	}{
		{"white", Pixel{255, 255, 255}, DefaultThreshold, true},
		{"black", Pixel{0, 0, 0}, DefaultThreshold, false},
		{"equal is off", Pixel{127, 127, 127}, DefaultThreshold, false},
		{"just above", Pixel{128, 128, 128}, DefaultThreshold, true},
		{"red channel low", Pixel{100, 255, 255}, DefaultThreshold, false},
		{"green channel low", Pixel{255, 100, 255}, DefaultThreshold, false},
		{"blue channel low", Pixel{255, 255, 100}, DefaultThreshold, false},
		{"per-channel cutoffs", Pixel{11, 21, 31}, Threshold{10, 20, 30}, true},
		{"max threshold never on", Pixel{255, 255, 255}, Threshold{255, 255, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pixel, tt.threshold, false); got != tt.want {
				t.Errorf("Classify(%v, %v, false) = %v, want %v", tt.pixel, tt.threshold, got, tt.want)
			}
			if got := Classify(tt.pixel, tt.threshold, true); got != !tt.want {
				t.Errorf("Classify(%v, %v, true) = %v, want %v", tt.pixel, tt.threshold, got, !tt.want)
			}
		})
	}
}

func TestClassifyStrictlyAbove(t *testing.T) {
	for i := 0; i < 1000; i++ {
		p := Pixel{uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256))}
		th := Threshold{uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256))}
		above := p.R > th.R && p.G > th.G && p.B > th.B

		if got := Classify(p, th, false); got != above {
			t.Fatalf("Classify(%v, %v, false) = %v, want %v", p, th, got, above)
		}
		if got := Classify(p, th, true); got == above {
			t.Fatalf("Classify(%v, %v, true) = %v, want %v", p, th, got, !above)
		}
	}
}

func TestClassifierSumMode(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		want  bool
	}{
		{"white", Pixel{255, 255, 255}, true},
		{"black", Pixel{0, 0, 0}, false},
		{"at cutoff", Pixel{127, 127, 128}, false},
		{"over cutoff", Pixel{127, 128, 128}, true},
		{"one bright channel", Pixel{255, 128, 0}, true},
		{"one dim channel", Pixel{255, 127, 0}, false},
	}

	// the threshold triple must be ignored in sum mode
	c := Classifier{Threshold: Threshold{255, 255, 255}, Mode: Sum}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.pixel); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.pixel, got, tt.want)
			}
			inverted := c
			inverted.Invert = true
			if got := inverted.Classify(tt.pixel); got != !tt.want {
				t.Errorf("inverted Classify(%v) = %v, want %v", tt.pixel, got, !tt.want)
			}
		})
	}
}

func TestClassifierPerChannel(t *testing.T) {
	c := Classifier{Threshold: DefaultThreshold}
	if !c.Classify(Pixel{255, 255, 255}) {
		t.Error("white pixel should be on")
	}
	c.Invert = true
	if c.Classify(Pixel{255, 255, 255}) {
		t.Error("inverted white pixel should be off")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"channel", PerChannel, false},
		{"per-channel", PerChannel, false},
		{"SUM", Sum, false},
		{"luminance", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeText(t *testing.T) {
	for _, m := range []Mode{PerChannel, Sum} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var back Mode
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != m {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, back, m)
		}
	}
}
