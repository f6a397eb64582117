package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/anyeshizhong/midi-performer/pkg/fileutil"
	"github.com/anyeshizhong/midi-performer/pkg/midifile"
	"github.com/anyeshizhong/midi-performer/pkg/performer"
)

// Screen dimensions.
const (
	ScreenWidth  = 1200
	ScreenHeight = 550
)

// Transport button geometry.
const (
	controlY      = 70
	controlWidth  = 110
	controlHeight = 48
	controlMargin = 14
)

var backgroundColor = color.RGBA{30, 30, 40, 255}

// Game is the Ebitengine front end. Each Update translates mouse and
// keyboard input into performer calls and advances the performer's tick;
// Draw renders every widget through its state renderer.
type Game struct {
	perf   *performer.Performer
	logger *slog.Logger

	buttons    []*Button
	keyButtons map[int]*Button
	recordBtn  *Button
	playBtn    *Button
	sustainBtn *Button

	volumeX, volumeY, volumeW, volumeH float32
	volumeDragging                     bool

	savePath string
	loadPath string
	fileName string
	status   string
}

// NewGame builds the full widget tree. savePath is where the Save button
// writes; loadPath is what the Load button reads (both configured on the
// command line, there are no native file dialogs).
func NewGame(perf *performer.Performer, savePath, loadPath string, logger *slog.Logger) *Game {
	g := &Game{
		perf:     perf,
		logger:   logger,
		savePath: fileutil.EnsureExtension(savePath, ".mid"),
		loadPath: loadPath,
		fileName: "untitled.mid",
		status:   "Ready",
	}
	perf.SetListener(g)

	g.buildControls()

	keys, byNote := buildKeyboard(ScreenWidth, perf.NoteTriggered)
	g.buttons = append(g.buttons, keys...)
	g.keyButtons = byNote

	g.volumeW, g.volumeH = 300, 12
	g.volumeX = float32(ScreenWidth)/2 - g.volumeW/2
	g.volumeY = controlY + controlHeight + 12

	return g
}

// buildControls creates the six transport buttons, centered as a row.
func (g *Game) buildControls() {
	totalWidth := 6*controlWidth + 5*controlMargin
	startX := float32(ScreenWidth-totalWidth) / 2

	pos := func(i int) float32 { return startX + float32(i*(controlWidth+controlMargin)) }

	g.recordBtn = NewButton(pos(0), controlY, controlWidth, controlHeight, func(active bool) {
		if active {
			g.perf.StartRecording()
			g.status = "Recording..."
		} else {
			g.perf.StopRecording()
			g.status = fmt.Sprintf("Recorded %d notes", g.perf.Log().Len())
		}
	})
	g.recordBtn.Toggle = true
	g.recordBtn.Label = func() string {
		if g.recordBtn.Active() {
			return "Recording"
		}
		return "Record"
	}
	g.recordBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {180, 50, 50, 255},
		StateHovered: {220, 70, 70, 255},
		StatePressed: {150, 30, 30, 255},
		StateActive:  {255, 0, 0, 255},
	}))

	g.playBtn = NewButton(pos(1), controlY, controlWidth, controlHeight, func(active bool) {
		if active {
			if !g.perf.StartPlayback() {
				// Empty log: revert the optimistic toggle.
				g.playBtn.SetActive(false)
				g.status = "Nothing to play"
			} else {
				g.status = "Playing..."
			}
		} else {
			g.perf.StopPlayback()
			g.status = "Playback stopped"
		}
	})
	g.playBtn.Toggle = true
	g.playBtn.Label = func() string {
		if g.playBtn.Active() {
			return "Playing"
		}
		return "Play"
	}
	g.playBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {50, 150, 100, 255},
		StateHovered: {70, 180, 120, 255},
		StatePressed: {30, 120, 80, 255},
		StateActive:  {0, 255, 0, 255},
	}))

	stopBtn := NewButton(pos(2), controlY, controlWidth, controlHeight, func(bool) {
		g.perf.StopAll()
		g.status = "Stopped"
	})
	stopBtn.Label = func() string { return "Stop" }
	stopBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {70, 130, 180, 255},
		StateHovered: {100, 150, 200, 255},
		StatePressed: {50, 100, 150, 255},
		StateActive:  {70, 130, 180, 255},
	}))

	saveBtn := NewButton(pos(3), controlY, controlWidth, controlHeight, func(bool) {
		g.save()
	})
	saveBtn.Label = func() string { return "Save" }
	saveBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {100, 100, 180, 255},
		StateHovered: {130, 130, 210, 255},
		StatePressed: {80, 80, 150, 255},
		StateActive:  {100, 100, 180, 255},
	}))

	loadBtn := NewButton(pos(4), controlY, controlWidth, controlHeight, func(bool) {
		g.load()
	})
	loadBtn.Label = func() string { return "Load" }
	loadBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {150, 100, 180, 255},
		StateHovered: {180, 130, 210, 255},
		StatePressed: {120, 80, 150, 255},
		StateActive:  {150, 100, 180, 255},
	}))

	g.sustainBtn = NewButton(pos(5), controlY, controlWidth, controlHeight, func(active bool) {
		g.perf.SetSustain(active)
	})
	g.sustainBtn.Toggle = true
	g.sustainBtn.Label = func() string { return "Sustain" }
	g.sustainBtn.SetAllRenderers(StandardRenderer(StateColors{
		StateNormal:  {140, 115, 60, 255},
		StateHovered: {170, 140, 80, 255},
		StatePressed: {120, 90, 40, 255},
		StateActive:  {200, 170, 80, 255},
	}))

	g.buttons = append(g.buttons, g.recordBtn, g.playBtn, stopBtn, saveBtn, loadBtn, g.sustainBtn)
}

// RecordingStateChanged implements performer.Listener; it keeps the
// Record toggle in sync with forced state changes.
func (g *Game) RecordingStateChanged(recording bool) {
	g.recordBtn.SetActive(recording)
}

// PlaybackStateChanged implements performer.Listener.
func (g *Game) PlaybackStateChanged(playing bool) {
	g.playBtn.SetActive(playing)
}

// save encodes the recording log to the configured output path.
func (g *Game) save() {
	events := g.perf.Log().Events()
	if err := midifile.EncodeFile(events, g.savePath); err != nil {
		if err == midifile.ErrEmptyLog {
			g.status = "Nothing to save"
		} else {
			g.status = fmt.Sprintf("Save failed: %v", err)
		}
		g.logger.Error("save failed", "path", g.savePath, "error", err)
		return
	}
	g.fileName = filepath.Base(g.savePath)
	g.status = fmt.Sprintf("Saved %d notes to %s", len(events), g.fileName)
	g.logger.Info("saved recording", "path", g.savePath, "events", len(events))
}

// load decodes the configured MIDI file and replaces the log wholesale.
// On any failure the existing log is left untouched.
func (g *Game) load() {
	if g.loadPath == "" {
		g.status = "No file configured to load (pass one on the command line)"
		return
	}
	events, err := midifile.DecodeFile(g.loadPath)
	if err != nil {
		g.status = fmt.Sprintf("Load failed: %v", err)
		g.logger.Error("load failed", "path", g.loadPath, "error", err)
		return
	}
	g.perf.ReplaceLog(events)
	g.fileName = filepath.Base(g.loadPath)
	g.status = fmt.Sprintf("Loaded %s (%d notes)", g.fileName, len(events))
	g.logger.Info("loaded recording", "path", g.loadPath, "events", len(events))
}

// Update implements ebiten.Game. It runs at the display tick rate; the
// performer only requires that each call observes a monotonic clock.
func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	g.updateVolumeSlider(mx, my, mouseDown)

	// Keyboard input: one trigger per physical press.
	for key, note := range keyboardMap {
		if inpututil.IsKeyJustPressed(key) {
			g.perf.NoteTriggered(note)
		}
		if b, ok := g.keyButtons[note]; ok {
			b.KeyHeld = ebiten.IsKeyPressed(key)
		}
	}

	// Playback echo presses.
	for note, b := range g.keyButtons {
		b.PlaybackPressed = g.perf.VisualActive(note)
	}

	for _, b := range g.buttons {
		b.Update(mx, my, mouseDown)
		if b.Clicked() && !b.KeyHeld && !b.PlaybackPressed {
			b.HandleClick()
		}
	}

	g.perf.Tick()
	return nil
}

// updateVolumeSlider handles click and drag on the volume bar.
func (g *Game) updateVolumeSlider(mx, my int, mouseDown bool) {
	fx, fy := float32(mx), float32(my)
	inside := fx >= g.volumeX && fx < g.volumeX+g.volumeW &&
		fy >= g.volumeY-4 && fy < g.volumeY+g.volumeH+4

	if mouseDown && (g.volumeDragging || inside) {
		g.volumeDragging = true
		v := float64(fx-g.volumeX) / float64(g.volumeW)
		g.perf.SetMasterVolume(v)
	} else {
		g.volumeDragging = false
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	drawCenteredText(screen, "MIDI Performer", ScreenWidth/2, 30, color.White)
	drawCenteredText(screen, g.fileName, ScreenWidth/2, 50, color.RGBA{170, 170, 170, 255})

	for _, b := range g.buttons {
		b.Draw(screen)
	}

	g.drawVolumeSlider(screen)

	drawCenteredText(screen,
		"Keys: Z-M lower octave, Q-I upper octave (S,D,G,H,J / 2,3,5,6,7 for sharps)",
		ScreenWidth/2, 440, color.RGBA{150, 150, 150, 255})
	drawCenteredText(screen, g.status, ScreenWidth/2, 500, color.RGBA{200, 200, 200, 255})
}

func (g *Game) drawVolumeSlider(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, g.volumeX, g.volumeY, g.volumeW, g.volumeH, color.RGBA{60, 60, 70, 255}, false)
	filled := g.volumeW * float32(g.perf.MasterVolume())
	vector.DrawFilledRect(screen, g.volumeX, g.volumeY, filled, g.volumeH, color.RGBA{120, 180, 240, 255}, false)
	vector.StrokeRect(screen, g.volumeX, g.volumeY, g.volumeW, g.volumeH, 1, color.RGBA{100, 100, 100, 255}, false)

	label := fmt.Sprintf("Volume: %d%%", int(g.perf.MasterVolume()*100))
	drawCenteredText(screen, label, ScreenWidth/2, g.volumeY+g.volumeH+12, color.RGBA{200, 200, 200, 255})
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
