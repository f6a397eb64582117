// Package cli parses command line arguments and environment variables.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Config holds the settings parsed from the command line.
type Config struct {
	LoadPath   string // optional MIDI file loaded at startup
	OutputPath string // target path for the Save button
	SoundFont  string // optional .sf2 file for SoundFont rendering
	LogLevel   string // debug, info, warn, error
	Headless   bool   // mute audio output
	ShowHelp   bool
}

// DefaultOutputPath is used by the Save button when -o is not given.
const DefaultOutputPath = "performance.mid"

// ParseArgs parses command line arguments into a Config.
// Environment variables LOG_LEVEL, HEADLESS and SOUNDFONT act as
// fallbacks; explicit flags win.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("midi-performer", flag.ContinueOnError)

	config := &Config{}

	fs.StringVar(&config.OutputPath, "o", DefaultOutputPath, "output path for saved recordings")
	fs.StringVar(&config.SoundFont, "soundfont", "", "SoundFont (.sf2) file for tone rendering")
	fs.StringVar(&config.SoundFont, "s", "", "SoundFont (.sf2) file (shorthand)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.BoolVar(&config.Headless, "headless", false, "mute audio output")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Environment fallbacks; command line flags take priority.
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = headlessEnv == "1" || strings.ToLower(headlessEnv) == "true"
		}
	}
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}
	if config.SoundFont == "" {
		config.SoundFont = os.Getenv("SOUNDFONT")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if fs.NArg() > 0 {
		config.LoadPath = fs.Arg(0)
	}

	return config, nil
}

// PrintHelp writes usage information to stdout.
func PrintHelp() {
	fmt.Println(`midi-performer - an on-screen piano with recording and MIDI export

Usage:
  midi-performer [options] [file.mid]

Arguments:
  file.mid            MIDI file to load at startup (optional)

Options:
  -o <path>           output path for saved recordings (default performance.mid)
  -soundfont, -s      SoundFont (.sf2) file for tone rendering
  -log-level, -l      log level: debug, info, warn, error (default info)
  -headless           mute audio output
  -help, -h           show this help

Environment:
  LOG_LEVEL           fallback log level
  HEADLESS            set to 1 to mute audio
  SOUNDFONT           fallback SoundFont path`)
}
