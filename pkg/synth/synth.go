// Package synth generates the piano tones played by the performer.
//
// Tones are rendered as immutable interleaved 16-bit stereo PCM buffers at
// a fixed sample rate. The additive synthesizer combines a sine fundamental
// with two harmonics and shapes the result with a linear ADSR envelope.
package synth

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// SampleRate is the PCM sample rate used throughout the application.
const SampleRate = 44100

// ErrInvalidParameter is returned when a synthesis parameter is out of range.
var ErrInvalidParameter = errors.New("invalid synthesis parameter")

const (
	a4Frequency = 440.0
	a4Note      = 69

	// Envelope segment lengths, expressed in seconds of sample rate.
	// The segments are applied in order (attack, decay, sustain) from the
	// start of the buffer, and the release is always carved from the end.
	attackSeconds  = 0.020
	decaySeconds   = 0.050
	releaseSeconds = 0.500
	sustainLevel   = 0.7
)

// noteNames covers the on-screen keyboard range C4..C6.
var noteNames = map[int]string{
	60: "C4", 61: "C#4", 62: "D4", 63: "D#4", 64: "E4", 65: "F4",
	66: "F#4", 67: "G4", 68: "G#4", 69: "A4", 70: "A#4", 71: "B4",
	72: "C5", 73: "C#5", 74: "D5", 75: "D#5", 76: "E5", 77: "F5",
	78: "F#5", 79: "G5", 80: "G#5", 81: "A5", 82: "A#5", 83: "B5", 84: "C6",
}

// MIDIToFrequency converts a MIDI note number to its frequency in Hz
// using equal temperament tuned to A4 = 440 Hz.
func MIDIToFrequency(note int) float64 {
	return a4Frequency * math.Pow(2.0, float64(note-a4Note)/12.0)
}

// NoteName returns the display name for a note in the keyboard range,
// or "" for notes outside of it.
func NoteName(note int) string {
	return noteNames[note]
}

// IsBlackKey reports whether the note is a sharp (a black key on the keyboard).
func IsBlackKey(note int) bool {
	switch note % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// ToneBuffer is an immutable buffer of interleaved 16-bit little-endian
// stereo PCM samples. Callers must treat the PCM bytes as read-only.
type ToneBuffer struct {
	pcm        []byte
	frames     int
	sampleRate int
}

// PCM returns the raw interleaved stereo sample bytes.
func (b *ToneBuffer) PCM() []byte { return b.pcm }

// Frames returns the number of stereo sample frames.
func (b *ToneBuffer) Frames() int { return b.frames }

// SampleRate returns the buffer's sample rate in Hz.
func (b *ToneBuffer) SampleRate() int { return b.sampleRate }

// Sample returns the sample value for the given frame and channel (0 or 1).
func (b *ToneBuffer) Sample(frame, channel int) int16 {
	off := (frame*2 + channel) * 2
	return int16(binary.LittleEndian.Uint16(b.pcm[off : off+2]))
}

// newToneBufferFromMono duplicates a mono int16 signal into both stereo
// channels of a freshly allocated ToneBuffer.
func newToneBufferFromMono(mono []int16, sampleRate int) *ToneBuffer {
	pcm := make([]byte, len(mono)*4)
	for i, s := range mono {
		binary.LittleEndian.PutUint16(pcm[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(pcm[i*4+2:], uint16(s))
	}
	return &ToneBuffer{pcm: pcm, frames: len(mono), sampleRate: sampleRate}
}

// GenerateTone synthesizes a tone of the given frequency and duration.
// The waveform is the sine fundamental plus the 2nd harmonic at 1/4
// amplitude and the 3rd at 1/8, shaped by a linear ADSR envelope and
// scaled by volume. The result is deterministic for identical inputs.
func GenerateTone(frequency float64, durationMS, sampleRate int, volume float64) (*ToneBuffer, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: frequency %g Hz", ErrInvalidParameter, frequency)
	}
	if durationMS <= 0 {
		return nil, fmt.Errorf("%w: duration %d ms", ErrInvalidParameter, durationMS)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d Hz", ErrInvalidParameter, sampleRate)
	}
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("%w: volume %g", ErrInvalidParameter, volume)
	}

	numSamples := int(math.Round(float64(sampleRate) * float64(durationMS) / 1000.0))
	durationSec := float64(durationMS) / 1000.0

	wave := make([]float64, numSamples)
	for i := range wave {
		// Evenly spaced time axis over [0, duration), endpoint excluded.
		t := durationSec * float64(i) / float64(numSamples)
		fundamental := math.Sin(2 * math.Pi * frequency * t)
		harmonic2 := 0.25 * math.Sin(2*math.Pi*frequency*2*t)
		harmonic3 := 0.125 * math.Sin(2*math.Pi*frequency*3*t)
		wave[i] = fundamental + harmonic2 + harmonic3
	}

	envelope := adsrEnvelope(numSamples, sampleRate)

	mono := make([]int16, numSamples)
	for i := range mono {
		sample := wave[i] * envelope[i] * volume * 32767.0
		if sample > 32767 {
			sample = 32767
		} else if sample < -32768 {
			sample = -32768
		}
		mono[i] = int16(sample)
	}

	return newToneBufferFromMono(mono, sampleRate), nil
}

// adsrEnvelope builds the amplitude envelope for numSamples samples.
// Segment lengths are fractions of the sample rate, not of the duration.
// For durations shorter than attack+decay+release the segments clip:
// attack and decay are written first from the start, and the release ramp
// is carved from the end, overwriting whatever it overlaps.
func adsrEnvelope(numSamples, sampleRate int) []float64 {
	attackSamples := int(float64(sampleRate) * attackSeconds)
	decaySamples := int(float64(sampleRate) * decaySeconds)
	releaseSamples := int(float64(sampleRate) * releaseSeconds)

	envelope := make([]float64, numSamples)
	for i := range envelope {
		envelope[i] = 1.0
	}

	// Attack: 0 -> 1
	for i := 0; i < attackSamples && i < numSamples; i++ {
		envelope[i] = rampValue(0, 1, i, attackSamples)
	}

	// Decay: 1 -> sustain level
	for i := 0; i < decaySamples && attackSamples+i < numSamples; i++ {
		envelope[attackSamples+i] = rampValue(1, sustainLevel, i, decaySamples)
	}

	// Sustain: held between decay and release, if any room remains.
	sustainStart := attackSamples + decaySamples
	sustainEnd := numSamples - releaseSamples
	for i := sustainStart; i < sustainEnd; i++ {
		envelope[i] = sustainLevel
	}

	// Release: sustain level -> 0, always occupying the final samples.
	// When the buffer is shorter than the release window, the tail of the
	// ramp is used so the envelope still ends at zero.
	releaseStart := numSamples - releaseSamples
	for i := releaseStart; i < numSamples; i++ {
		if i < 0 {
			continue
		}
		envelope[i] = rampValue(sustainLevel, 0, i-releaseStart, releaseSamples)
	}

	return envelope
}

// rampValue returns point i of a length-n linear ramp from start to end,
// endpoint included.
func rampValue(start, end float64, i, n int) float64 {
	if n <= 1 {
		return start
	}
	return start + (end-start)*float64(i)/float64(n-1)
}
