package cli

import (
	"testing"
)

func TestParseArgs_Defaults(t *testing.T) {
	config, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, expected %q", config.OutputPath, DefaultOutputPath)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, expected info", config.LogLevel)
	}
	if config.LoadPath != "" {
		t.Errorf("LoadPath = %q, expected empty", config.LoadPath)
	}
	if config.Headless {
		t.Error("Headless should default to false")
	}
}

func TestParseArgs_Flags(t *testing.T) {
	config, err := ParseArgs([]string{
		"-o", "take1.mid",
		"-soundfont", "piano.sf2",
		"-log-level", "debug",
		"-headless",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.OutputPath != "take1.mid" {
		t.Errorf("OutputPath = %q", config.OutputPath)
	}
	if config.SoundFont != "piano.sf2" {
		t.Errorf("SoundFont = %q", config.SoundFont)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", config.LogLevel)
	}
	if !config.Headless {
		t.Error("Headless not set")
	}
}

func TestParseArgs_PositionalLoadPath(t *testing.T) {
	config, err := ParseArgs([]string{"-o", "out.mid", "song.mid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.LoadPath != "song.mid" {
		t.Errorf("LoadPath = %q, expected song.mid", config.LoadPath)
	}
}

func TestParseArgs_ShorthandFlags(t *testing.T) {
	config, err := ParseArgs([]string{"-s", "piano.sf2", "-l", "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.SoundFont != "piano.sf2" {
		t.Errorf("SoundFont = %q", config.SoundFont)
	}
	if config.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", config.LogLevel)
	}
}

func TestParseArgs_InvalidLogLevel(t *testing.T) {
	_, err := ParseArgs([]string{"-log-level", "verbose"})
	if err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestParseArgs_EnvironmentFallbacks(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("HEADLESS", "1")
	t.Setenv("SOUNDFONT", "env.sf2")

	config, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %q, expected error (from env, lowercased)", config.LogLevel)
	}
	if !config.Headless {
		t.Error("Headless not picked up from env")
	}
	if config.SoundFont != "env.sf2" {
		t.Errorf("SoundFont = %q, expected env.sf2", config.SoundFont)
	}
}

func TestParseArgs_FlagsBeatEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SOUNDFONT", "env.sf2")

	config, err := ParseArgs([]string{"-log-level", "debug", "-soundfont", "flag.sf2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected flag to win", config.LogLevel)
	}
	if config.SoundFont != "flag.sf2" {
		t.Errorf("SoundFont = %q, expected flag to win", config.SoundFont)
	}
}

func TestParseArgs_Help(t *testing.T) {
	for _, flag := range []string{"-help", "-h"} {
		config, err := ParseArgs([]string{flag})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", flag, err)
		}
		if !config.ShowHelp {
			t.Errorf("%s: ShowHelp not set", flag)
		}
	}
}
