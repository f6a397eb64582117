// Package audio plays rendered tone buffers through Ebitengine's audio
// mixer. Playback is fire-and-forget: each triggered tone gets its own
// player and Ebitengine mixes every live player into the output.
package audio

import (
	"bytes"
	"fmt"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/anyeshizhong/midi-performer/pkg/synth"
)

// Player is the Ebitengine-backed audio sink. It implements
// performer.Sink.
type Player struct {
	ctx     *eaudio.Context
	players []*eaudio.Player
	muted   bool
	mu      sync.Mutex
}

// NewPlayer creates a sink on the given audio context. Ebitengine allows
// a single context per process; pass nil to create one at the synth
// sample rate.
func NewPlayer(ctx *eaudio.Context) *Player {
	if ctx == nil {
		ctx = eaudio.NewContext(synth.SampleRate)
	}
	return &Player{
		ctx:     ctx,
		players: make([]*eaudio.Player, 0),
	}
}

// SetMuted silences all future tones (headless mode). Players are still
// created so timing behavior is identical.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// PlayTone starts playback of the buffer at the given volume and returns
// immediately. The buffer's PCM bytes are read-only and shared with the
// player for the duration of playback.
func (p *Player) PlayTone(buf *synth.ToneBuffer, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cleanupLocked()

	player, err := p.ctx.NewPlayer(bytes.NewReader(buf.PCM()))
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}

	if p.muted {
		player.SetVolume(0)
	} else {
		player.SetVolume(volume)
	}

	player.Play()
	p.players = append(p.players, player)
	return nil
}

// StopAll immediately halts and releases every live player.
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, player := range p.players {
		player.Close()
	}
	p.players = p.players[:0]
}

// Cleanup releases players that have finished. Called once per frame so
// the live list stays bounded by actual polyphony.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleanupLocked()
}

// ActiveCount returns the number of live players.
func (p *Player) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.players)
}

func (p *Player) cleanupLocked() {
	active := p.players[:0]
	for _, player := range p.players {
		if player.IsPlaying() {
			active = append(active, player)
		} else {
			player.Close()
		}
	}
	p.players = active
}
