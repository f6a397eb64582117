package midifile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/anyeshizhong/midi-performer/pkg/performer"
)

func TestEncode_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(nil, &buf)
	if !errors.Is(err, ErrEmptyLog) {
		t.Errorf("expected ErrEmptyLog, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("bytes were written for an empty log")
	}
}

func TestEncodeFile_EmptyLogCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mid")
	if err := EncodeFile(nil, path); !errors.Is(err, ErrEmptyLog) {
		t.Fatalf("expected ErrEmptyLog, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file was created for an empty log")
	}
}

func TestRoundTrip_PreservesTimestampsAndNotes(t *testing.T) {
	events := []performer.Event{
		{TimestampMS: 0, Note: 60},
		{TimestampMS: 500, Note: 64},
		{TimestampMS: 1000, Note: 67},
	}

	var buf bytes.Buffer
	if err := Encode(events, &buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(decoded) != len(events) {
		t.Fatalf("decoded %d events, expected %d", len(decoded), len(events))
	}
	for i, ev := range decoded {
		if ev.Note != events[i].Note {
			t.Errorf("event %d: note %d, expected %d", i, ev.Note, events[i].Note)
		}
		diff := ev.TimestampMS - events[i].TimestampMS
		if diff < -2 || diff > 2 {
			t.Errorf("event %d: timestamp %d, expected %d (+-2 ms)", i, ev.TimestampMS, events[i].TimestampMS)
		}
	}
}

func TestRoundTrip_RepeatedNotes(t *testing.T) {
	events := []performer.Event{
		{TimestampMS: 0, Note: 60},
		{TimestampMS: 100, Note: 60},
		{TimestampMS: 200, Note: 60},
	}

	var buf bytes.Buffer
	if err := Encode(events, &buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("decoded %d events, expected 3", len(decoded))
	}
}

func TestEncode_OneNoteOffPerDistinctPitch(t *testing.T) {
	events := []performer.Event{
		{TimestampMS: 0, Note: 64},
		{TimestampMS: 100, Note: 60},
		{TimestampMS: 200, Note: 64},
		{TimestampMS: 300, Note: 67},
	}

	var buf bytes.Buffer
	if err := Encode(events, &buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-reading encoded file: %v", err)
	}

	var offs []int
	var channel, key, velocity uint8
	for _, ev := range s.Tracks[0] {
		if ev.Message.GetNoteOff(&channel, &key, &velocity) {
			offs = append(offs, int(key))
		}
	}

	// One per distinct pitch, in order of first occurrence.
	want := []int{64, 60, 67}
	if len(offs) != len(want) {
		t.Fatalf("got %d note-offs %v, expected %v", len(offs), offs, want)
	}
	for i := range want {
		if offs[i] != want[i] {
			t.Errorf("note-off %d: %d, expected %d", i, offs[i], want[i])
		}
	}
}

func TestDecode_TempoChangeAffectsLaterDeltasOnly(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	// 480 ticks at 120 BPM = 500 ms.
	track.Add(480, midi.NoteOn(0, 60, 100))
	track.Add(0, smf.MetaTempo(240))
	// 480 ticks at 240 BPM = 250 ms.
	track.Add(480, midi.NoteOn(0, 64, 100))
	track.Close(0)
	if err := s.Add(track); err != nil {
		t.Fatalf("building track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	events, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []performer.Event{
		{TimestampMS: 500, Note: 60},
		{TimestampMS: 750, Note: 64},
	}
	if len(events) != len(want) {
		t.Fatalf("decoded %v, expected %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d: %v, expected %v", i, events[i], want[i])
		}
	}
}

func TestDecode_ZeroVelocityNoteOnIgnored(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, midi.NoteOn(0, 60, 100))
	// Running-status style note end: note-on with velocity 0.
	track.Add(480, midi.NoteOn(0, 60, 0))
	track.Add(480, midi.NoteOn(0, 64, 100))
	track.Close(0)
	if err := s.Add(track); err != nil {
		t.Fatalf("building track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	events, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("decoded %d events, expected 2", len(events))
	}
	// The zero-velocity message still advanced time.
	if events[1].TimestampMS != 1000 || events[1].Note != 64 {
		t.Errorf("second event = %v, expected {1000 64}", events[1])
	}
}

func TestDecode_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("this is not a midi file at all")},
		{"empty", nil},
		{"truncated header", []byte("MThd\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}

func TestEncodeFileDecodeFile_RoundTrip(t *testing.T) {
	events := []performer.Event{
		{TimestampMS: 0, Note: 72},
		{TimestampMS: 333, Note: 76},
		{TimestampMS: 1250, Note: 79},
	}

	path := filepath.Join(t.TempDir(), "take.mid")
	if err := EncodeFile(events, path); err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}

	decoded, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}
	if len(decoded) != len(events) {
		t.Fatalf("decoded %d events, expected %d", len(decoded), len(events))
	}
	for i := range events {
		if decoded[i].Note != events[i].Note {
			t.Errorf("event %d: note %d, expected %d", i, decoded[i].Note, events[i].Note)
		}
	}
}

func TestDecodeFile_MissingFile(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.mid"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMsToTicks(t *testing.T) {
	tests := []struct {
		ms       int64
		expected int64
	}{
		{0, 0},
		{500, 480},  // one beat at 120 BPM
		{1000, 960}, // two beats
		{1, 1},      // 0.96 ticks rounds to 1
	}

	for _, tt := range tests {
		if got := msToTicks(tt.ms); got != tt.expected {
			t.Errorf("msToTicks(%d) = %d, expected %d", tt.ms, got, tt.expected)
		}
	}
}
