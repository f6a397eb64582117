package synth

import "fmt"

// synthesisVolume is the amplitude tones are rendered at. The master
// volume is applied by the audio sink at play time, so cached buffers
// stay volume-independent.
const synthesisVolume = 0.3

// Voice renders a (note, duration) pair into a ToneBuffer. The additive
// synthesizer and the SoundFont renderer both satisfy this, so the cache
// and the performer never care which one is active.
type Voice interface {
	RenderTone(note, durationMS int) (*ToneBuffer, error)
}

// AdditiveVoice renders tones with the built-in additive synthesizer.
type AdditiveVoice struct {
	sampleRate int
}

// NewAdditiveVoice creates an additive voice at the default sample rate.
func NewAdditiveVoice() *AdditiveVoice {
	return &AdditiveVoice{sampleRate: SampleRate}
}

// RenderTone implements Voice.
func (v *AdditiveVoice) RenderTone(note, durationMS int) (*ToneBuffer, error) {
	if note < 0 || note > 127 {
		return nil, fmt.Errorf("%w: note %d", ErrInvalidParameter, note)
	}
	return GenerateTone(MIDIToFrequency(note), durationMS, v.sampleRate, synthesisVolume)
}
