// Package ui implements the Ebitengine shell: the on-screen keyboard,
// transport buttons, volume slider and status line. All performance
// behavior lives in pkg/performer; this package only translates input
// events and renders state.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// defaultFace is the bitmap font used for every label.
var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// ButtonState enumerates the visual states of a button.
type ButtonState int

const (
	StateNormal ButtonState = iota
	StateHovered
	StatePressed
	StateActive
)

// RenderFunc draws a button for its current visual state. Buttons carry a
// renderer per state, so appearance is a pluggable strategy rather than
// hardcoded in the widget.
type RenderFunc func(screen *ebiten.Image, b *Button)

// Button is a clickable rectangle with press/hover tracking and optional
// toggle semantics. Clicks fire on release while the cursor is still over
// the button.
type Button struct {
	X, Y, W, H float32
	Label      func() string
	Toggle     bool
	Note       int // MIDI note for piano keys, -1 for controls
	OnClick    func(active bool)

	// KeyHeld and PlaybackPressed force the pressed appearance for
	// physical-keyboard and playback-echo presses. The game sets them
	// each frame.
	KeyHeld         bool
	PlaybackPressed bool

	state     ButtonState
	active    bool
	pressed   bool
	released  bool
	renderers map[ButtonState]RenderFunc
}

// NewButton creates a button at the given rectangle.
func NewButton(x, y, w, h float32, onClick func(active bool)) *Button {
	return &Button{
		X: x, Y: y, W: w, H: h,
		Note:      -1,
		OnClick:   onClick,
		renderers: make(map[ButtonState]RenderFunc),
	}
}

// SetRenderer installs the renderer for one visual state.
func (b *Button) SetRenderer(state ButtonState, fn RenderFunc) {
	b.renderers[state] = fn
}

// SetAllRenderers installs the same renderer for every state; the
// renderer picks colors from the button's visual state itself.
func (b *Button) SetAllRenderers(fn RenderFunc) {
	for _, s := range []ButtonState{StateNormal, StateHovered, StatePressed, StateActive} {
		b.renderers[s] = fn
	}
}

// Contains reports whether the point lies inside the button.
func (b *Button) Contains(x, y int) bool {
	fx, fy := float32(x), float32(y)
	return fx >= b.X && fx < b.X+b.W && fy >= b.Y && fy < b.Y+b.H
}

// Update advances the hover/press state machine for this frame.
func (b *Button) Update(mx, my int, mouseDown bool) {
	inside := b.Contains(mx, my)
	wasPressed := b.pressed
	b.pressed = inside && mouseDown
	b.released = wasPressed && !mouseDown && inside

	switch {
	case b.pressed:
		b.state = StatePressed
	case b.active:
		b.state = StateActive
	case inside:
		b.state = StateHovered
	default:
		b.state = StateNormal
	}
}

// Clicked reports whether a click completed on this frame.
func (b *Button) Clicked() bool { return b.released }

// HandleClick applies toggle semantics and invokes the click callback.
func (b *Button) HandleClick() {
	if b.Toggle {
		b.active = !b.active
	}
	if b.OnClick != nil {
		b.OnClick(b.active)
	}
}

// SetActive sets the toggle state directly without firing the callback,
// used to revert optimistic toggles and for forced stops.
func (b *Button) SetActive(active bool) { b.active = active }

// Active returns the toggle state.
func (b *Button) Active() bool { return b.active }

// VisualState returns the state renderers should draw, accounting for
// key-held and playback press overrides.
func (b *Button) VisualState() ButtonState {
	if b.KeyHeld || b.PlaybackPressed {
		return StatePressed
	}
	return b.state
}

// Draw renders the button through the strategy for its visual state.
func (b *Button) Draw(screen *ebiten.Image) {
	if fn := b.renderers[b.VisualState()]; fn != nil {
		fn(screen, b)
		return
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, color.RGBA{100, 100, 100, 255}, false)
}

// StateColors maps visual states to fill colors for StandardRenderer.
type StateColors map[ButtonState]color.RGBA

// StandardRenderer returns the renderer used by the transport buttons:
// a filled rectangle with a grey border and a centered label.
func StandardRenderer(colors StateColors) RenderFunc {
	return func(screen *ebiten.Image, b *Button) {
		fill, ok := colors[b.VisualState()]
		if !ok {
			fill = colors[StateNormal]
		}
		vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, fill, false)
		vector.StrokeRect(screen, b.X, b.Y, b.W, b.H, 2, color.RGBA{100, 100, 100, 255}, false)

		if b.Label != nil {
			drawCenteredText(screen, b.Label(), b.X+b.W/2, b.Y+b.H/2, color.White)
		}
	}
}

// drawCenteredText draws s centered on (cx, cy).
func drawCenteredText(screen *ebiten.Image, s string, cx, cy float32, clr color.Color) {
	w, h := text.Measure(s, defaultFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx)-w/2, float64(cy)-h/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, defaultFace, op)
}
