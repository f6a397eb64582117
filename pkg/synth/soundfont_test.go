package synth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSoundFontVoice_MissingFile(t *testing.T) {
	_, err := LoadSoundFontVoice(filepath.Join(t.TempDir(), "missing.sf2"))
	if err == nil {
		t.Error("expected error for missing soundfont")
	}
}

func TestLoadSoundFontVoice_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.sf2")
	if err := os.WriteFile(path, []byte("not a soundfont"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadSoundFontVoice(path)
	if err == nil {
		t.Error("expected error for invalid soundfont data")
	}
}

func TestWriteSample_Clipping(t *testing.T) {
	tests := []struct {
		name     string
		sample   float32
		expected int16
	}{
		{"zero", 0, 0},
		{"positive full scale", 1.0, 32767},
		{"over positive", 2.5, 32767},
		{"under negative", -2.5, -32768},
		{"half scale", 0.5, 16383},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [2]byte
			writeSample(dst[:], tt.sample)
			got := int16(uint16(dst[0]) | uint16(dst[1])<<8)
			if got != tt.expected {
				t.Errorf("writeSample(%f) = %d, expected %d", tt.sample, got, tt.expected)
			}
		})
	}
}
