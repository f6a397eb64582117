// Package app wires the performer together: configuration, logging,
// voice selection, audio output and the Ebitengine window.
package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/anyeshizhong/midi-performer/pkg/audio"
	"github.com/anyeshizhong/midi-performer/pkg/cli"
	"github.com/anyeshizhong/midi-performer/pkg/logger"
	"github.com/anyeshizhong/midi-performer/pkg/midifile"
	"github.com/anyeshizhong/midi-performer/pkg/performer"
	"github.com/anyeshizhong/midi-performer/pkg/synth"
	"github.com/anyeshizhong/midi-performer/pkg/ui"
)

// Application manages application startup and the main loop.
type Application struct {
	config *cli.Config
	log    *slog.Logger
}

// New creates an Application.
func New() *Application {
	return &Application{}
}

// Run executes the application with the given command line arguments.
func (app *Application) Run(args []string) error {
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp()
		return nil
	}

	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("application started")

	voice := app.selectVoice()
	cache := synth.NewToneCache(voice, 0)

	sink := audio.NewPlayer(eaudio.NewContext(synth.SampleRate))
	sink.SetMuted(app.config.Headless)
	if app.config.Headless {
		app.log.Info("headless mode: audio muted")
	}

	perf := performer.New(cache, sink, app.log)

	game := ui.NewGame(perf, app.config.OutputPath, app.config.LoadPath, app.log)

	if app.config.LoadPath != "" {
		app.loadStartupFile(perf)
	}

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("MIDI Performer")
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}

	app.log.Info("application terminated normally")
	return nil
}

// parseArgs parses the command line arguments.
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger initializes the structured logger.
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// selectVoice picks the tone renderer. A configured SoundFont is tried
// first; on any failure the additive voice takes over so startup never
// fails over a bad .sf2 file.
func (app *Application) selectVoice() synth.Voice {
	if app.config.SoundFont != "" {
		voice, err := synth.LoadSoundFontVoice(app.config.SoundFont)
		if err != nil {
			app.log.Warn("failed to load SoundFont, using additive synthesis",
				"path", app.config.SoundFont, "error", err)
		} else {
			app.log.Info("using SoundFont voice", "path", app.config.SoundFont)
			return voice
		}
	}
	return synth.NewAdditiveVoice()
}

// loadStartupFile preloads the recording log from the configured MIDI
// file. A failed load only logs; the application starts with an empty
// log.
func (app *Application) loadStartupFile(perf *performer.Performer) {
	events, err := midifile.DecodeFile(app.config.LoadPath)
	if err != nil {
		app.log.Warn("failed to load startup file", "path", app.config.LoadPath, "error", err)
		return
	}
	perf.ReplaceLog(events)
	app.log.Info("loaded startup file", "path", app.config.LoadPath, "events", len(events))
}
