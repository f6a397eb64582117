package synth

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sinshu/go-meltysynth/meltysynth"
)

// soundFontVelocity is the fixed key velocity used for SoundFont rendering,
// matching the velocity written to saved MIDI files.
const soundFontVelocity = 100

// SoundFontVoice renders tones through a loaded SoundFont instead of the
// additive synthesizer. It honors the same (note, duration) contract and
// produces the same interleaved stereo int16 buffers, so it can back the
// ToneCache transparently.
type SoundFontVoice struct {
	font       *meltysynth.SoundFont
	sampleRate int
}

// LoadSoundFontVoice parses the SoundFont at path and returns a voice
// rendering through it.
func LoadSoundFontVoice(path string) (*SoundFontVoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read soundfont %s: %w", path, err)
	}
	font, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse soundfont %s: %w", path, err)
	}
	return &SoundFontVoice{font: font, sampleRate: SampleRate}, nil
}

// RenderTone implements Voice. The note is held for the duration minus the
// release window and then released, so the buffer contains the instrument's
// natural decay and matches the additive voice's length contract exactly.
func (v *SoundFontVoice) RenderTone(note, durationMS int) (*ToneBuffer, error) {
	if note < 0 || note > 127 {
		return nil, fmt.Errorf("%w: note %d", ErrInvalidParameter, note)
	}
	if durationMS <= 0 {
		return nil, fmt.Errorf("%w: duration %d ms", ErrInvalidParameter, durationMS)
	}

	settings := meltysynth.NewSynthesizerSettings(int32(v.sampleRate))
	synthesizer, err := meltysynth.NewSynthesizer(v.font, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create soundfont synthesizer: %w", err)
	}

	numSamples := (v.sampleRate*durationMS + 500) / 1000
	releaseSamples := int(float64(v.sampleRate) * releaseSeconds)
	holdSamples := numSamples - releaseSamples
	if holdSamples < 0 {
		holdSamples = 0
	}

	left := make([]float32, numSamples)
	right := make([]float32, numSamples)

	synthesizer.NoteOn(0, int32(note), soundFontVelocity)
	synthesizer.Render(left[:holdSamples], right[:holdSamples])
	synthesizer.NoteOff(0, int32(note))
	synthesizer.Render(left[holdSamples:], right[holdSamples:])

	pcm := make([]byte, numSamples*4)
	for i := 0; i < numSamples; i++ {
		writeSample(pcm[i*4:], left[i])
		writeSample(pcm[i*4+2:], right[i])
	}
	return &ToneBuffer{pcm: pcm, frames: numSamples, sampleRate: v.sampleRate}, nil
}

// writeSample clips a float sample to int16 range and stores it little-endian.
func writeSample(dst []byte, sample float32) {
	scaled := float64(sample) * 32767.0
	if scaled > 32767 {
		scaled = 32767
	} else if scaled < -32768 {
		scaled = -32768
	}
	s := int16(scaled)
	dst[0] = byte(s)
	dst[1] = byte(uint16(s) >> 8)
}
