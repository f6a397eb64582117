package midifile

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/anyeshizhong/midi-performer/pkg/performer"
)

// eventsFromDeltas builds a valid time-ordered log from inter-event gaps,
// cycling notes across the keyboard range.
func eventsFromDeltas(deltas []int) []performer.Event {
	events := make([]performer.Event, len(deltas))
	ts := int64(0)
	for i, d := range deltas {
		ts += int64(d)
		events[i] = performer.Event{TimestampMS: ts, Note: 60 + i%25}
	}
	return events
}

func TestProperty_RoundTripWithinQuantization(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// At 480 ticks per beat and 120 BPM a tick is ~1.04 ms, so a full
	// round trip may move a timestamp by at most 2 ms.
	properties.Property("decode(encode(log)) preserves order, notes and timing", prop.ForAll(
		func(deltas []int) bool {
			events := eventsFromDeltas(deltas)
			if len(events) == 0 {
				return true
			}

			var buf bytes.Buffer
			if err := Encode(events, &buf); err != nil {
				return false
			}
			decoded, err := Decode(&buf)
			if err != nil {
				return false
			}
			if len(decoded) != len(events) {
				return false
			}

			for i := range events {
				if decoded[i].Note != events[i].Note {
					return false
				}
				diff := decoded[i].TimestampMS - events[i].TimestampMS
				if diff < -2 || diff > 2 {
					return false
				}
				if i > 0 && decoded[i].TimestampMS < decoded[i-1].TimestampMS {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3000)),
	))

	properties.TestingRun(t)
}
