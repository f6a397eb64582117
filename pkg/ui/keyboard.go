package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/anyeshizhong/midi-performer/pkg/synth"
)

// Keyboard note range shown on screen (C4..C6).
const (
	StartNote = 60
	EndNote   = 84
)

// keyboardMap assigns two rows of letter keys across the 25 notes, the
// lower octave on the bottom row and the upper on the top row, with
// sharps on the in-between keys.
var keyboardMap = map[ebiten.Key]int{
	ebiten.KeyZ: 60, ebiten.KeyS: 61, ebiten.KeyX: 62, ebiten.KeyD: 63,
	ebiten.KeyC: 64, ebiten.KeyV: 65, ebiten.KeyG: 66, ebiten.KeyB: 67,
	ebiten.KeyH: 68, ebiten.KeyN: 69, ebiten.KeyJ: 70, ebiten.KeyM: 71,
	ebiten.KeyQ: 72, ebiten.Key2: 73, ebiten.KeyW: 74, ebiten.Key3: 75,
	ebiten.KeyE: 76, ebiten.KeyR: 77, ebiten.Key5: 78, ebiten.KeyT: 79,
	ebiten.Key6: 80, ebiten.KeyY: 81, ebiten.Key7: 82, ebiten.KeyU: 83,
	ebiten.KeyI: 84,
}

const (
	keyWidth  = 38
	keyHeight = 140
	keyMargin = 2
	keyStartY = 260
)

// pianoKeyRenderer draws one piano key: white or black fill by pitch,
// green when pressed, with the note name near the bottom edge.
func pianoKeyRenderer(black bool) RenderFunc {
	normal := color.RGBA{245, 245, 245, 255}
	hover := color.RGBA{220, 220, 255, 255}
	label := color.RGBA{50, 50, 50, 255}
	if black {
		normal = color.RGBA{20, 20, 20, 255}
		hover = color.RGBA{60, 60, 60, 255}
		label = color.RGBA{200, 200, 200, 255}
	}
	pressed := color.RGBA{50, 150, 100, 255}

	return func(screen *ebiten.Image, b *Button) {
		var fill color.RGBA
		switch b.VisualState() {
		case StatePressed, StateActive:
			fill = pressed
		case StateHovered:
			fill = hover
		default:
			fill = normal
		}
		drawKeyRect(screen, b, fill)
		drawCenteredText(screen, synth.NoteName(b.Note), b.X+b.W/2, b.Y+b.H-12, label)
	}
}

// drawKeyRect fills a key and outlines it with the shared border grey.
func drawKeyRect(screen *ebiten.Image, b *Button, fill color.RGBA) {
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, fill, false)
	vector.StrokeRect(screen, b.X, b.Y, b.W, b.H, 1, color.RGBA{100, 100, 100, 255}, false)
}

// buildKeyboard lays out the 25 keys centered on the screen, black keys
// narrower, shorter and shifted toward the preceding white key, and
// returns them together with the note lookup.
func buildKeyboard(screenWidth int, onNote func(note int)) ([]*Button, map[int]*Button) {
	totalKeys := EndNote - StartNote + 1
	totalWidth := totalKeys*keyWidth + (totalKeys-1)*keyMargin
	startX := float32(screenWidth-totalWidth) / 2

	var buttons []*Button
	byNote := make(map[int]*Button, totalKeys)

	for i := 0; i < totalKeys; i++ {
		note := StartNote + i
		black := synth.IsBlackKey(note)

		x := startX + float32(i*(keyWidth+keyMargin))
		y := float32(keyStartY)
		w := float32(keyWidth)
		h := float32(keyHeight)
		if black {
			w *= 0.7
			h *= 0.6
			x -= float32(keyWidth+keyMargin) * 0.15
			y -= float32(keyHeight) * 0.05
		}

		n := note
		b := NewButton(x, y, w, h, func(bool) { onNote(n) })
		b.Note = note
		b.SetAllRenderers(pianoKeyRenderer(black))

		buttons = append(buttons, b)
		byNote[note] = b
	}

	return buttons, byNote
}
