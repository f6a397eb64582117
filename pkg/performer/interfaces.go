package performer

import "github.com/anyeshizhong/midi-performer/pkg/synth"

// Sink abstracts the audio output so the core can be tested without
// initializing a real audio device. Playback is fire-and-forget: the sink
// owns the players it creates and mixes concurrent tones itself.
type Sink interface {
	// PlayTone starts playback of the buffer at the given volume [0,1].
	PlayTone(buf *synth.ToneBuffer, volume float64) error

	// StopAll immediately halts every tone the sink is playing.
	StopAll()

	// Cleanup releases finished players; called periodically from the
	// frame loop.
	Cleanup()
}

// Listener receives state-change notifications for the UI toggles.
// Implementations must not call back into the performer.
type Listener interface {
	RecordingStateChanged(recording bool)
	PlaybackStateChanged(playing bool)
}

// nopListener is used when no listener is registered.
type nopListener struct{}

func (nopListener) RecordingStateChanged(bool) {}
func (nopListener) PlaybackStateChanged(bool)  {}
