// Package midifile converts the recording log to and from standard MIDI
// files (single track, fixed tempo).
//
// The encoding is deliberately simple: one set-tempo meta event, a note-on
// per recorded event with delta times in ticks, then one note-off per
// distinct pitch. Note-offs are not paired to individual note-ons and
// durations are not encoded; this matches the established on-disk format
// and must not be changed to a paired on/off model.
package midifile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/anyeshizhong/midi-performer/pkg/performer"
)

const (
	// TicksPerBeat is the file's MIDI timing resolution (ppq).
	TicksPerBeat = 480

	// BPM is the fixed recording tempo; 120 BPM = 500000 us per beat.
	BPM = 120

	// Velocity is the fixed note-on velocity for every recorded event.
	Velocity = 100

	defaultMicrosPerBeat = 500000.0
)

var (
	// ErrEmptyLog is returned when encoding is attempted with no
	// recorded events.
	ErrEmptyLog = errors.New("no recorded events")

	// ErrInvalidFormat is returned when a file cannot be parsed as a
	// MIDI container.
	ErrInvalidFormat = errors.New("invalid MIDI file")
)

// msToTicks converts a millisecond offset to an absolute tick count at the
// fixed recording tempo.
func msToTicks(ms int64) int64 {
	return int64(math.Round(float64(ms) / 1000.0 * BPM / 60.0 * TicksPerBeat))
}

// Encode writes the events as a single-track MIDI file.
func Encode(events []performer.Event, w io.Writer) error {
	if len(events) == 0 {
		return ErrEmptyLog
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerBeat)

	var track smf.Track
	track.Add(0, smf.MetaTempo(BPM))

	cumTicks := int64(0)
	for _, ev := range events {
		ticks := msToTicks(ev.TimestampMS)
		delta := ticks - cumTicks
		track.Add(uint32(delta), midi.NoteOn(0, uint8(ev.Note), Velocity))
		cumTicks = ticks
	}

	// One note-off per distinct pitch, in order of first occurrence.
	seen := make(map[int]bool)
	for _, ev := range events {
		if seen[ev.Note] {
			continue
		}
		seen[ev.Note] = true
		track.Add(0, midi.NoteOff(0, uint8(ev.Note)))
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return fmt.Errorf("failed to build MIDI track: %w", err)
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write MIDI data: %w", err)
	}
	return nil
}

// EncodeFile writes the events to a MIDI file at path. The file is not
// created when the log is empty.
func EncodeFile(events []performer.Event, path string) error {
	if len(events) == 0 {
		return ErrEmptyLog
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(events, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Decode reads track 0 of a MIDI file into recorded events.
//
// A running tempo (default 120 BPM) converts each message's delta time to
// milliseconds using the tempo in effect at that point; tempo meta events
// update the running tempo for subsequent deltas only. Every note-on with
// velocity > 0 becomes an event at the cumulative millisecond offset;
// note-offs and all other messages advance time but produce nothing.
func Decode(r io.Reader) ([]performer.Event, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(s.Tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks", ErrInvalidFormat)
	}

	resolution := float64(TicksPerBeat)
	if metric, ok := s.TimeFormat.(smf.MetricTicks); ok {
		resolution = float64(metric)
	}

	microsPerBeat := defaultMicrosPerBeat
	cumMS := 0.0
	var events []performer.Event

	var channel, key, velocity uint8
	for _, ev := range s.Tracks[0] {
		// The delta leading up to this message is converted with the
		// tempo in effect before the message is processed.
		cumMS += float64(ev.Delta) / resolution * microsPerBeat / 1e6 * 1000

		var bpm float64
		if ev.Message.GetMetaTempo(&bpm) {
			if bpm > 0 {
				microsPerBeat = 60e6 / bpm
			}
			continue
		}

		if ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
			events = append(events, performer.Event{
				TimestampMS: int64(math.Round(cumMS)),
				Note:        int(key),
			})
		}
	}

	return events, nil
}

// DecodeFile reads a MIDI file from path.
func DecodeFile(path string) ([]performer.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	events, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}
