// Package performer implements the performance core: the recording log,
// the recorder and playback state machines, and the facade that routes
// note triggers through the tone cache to the audio sink.
//
// The core is single-threaded and frame-driven: the UI calls Tick once per
// frame with no internal timers or goroutines. Correctness depends only on
// monotonic clock reads, not on the frame rate.
package performer

// Event is one recorded key press: a millisecond offset from the start of
// the recording and the MIDI note that was triggered.
type Event struct {
	TimestampMS int64
	Note        int
}

// Log is an append-only, time-ordered sequence of recorded events.
// Timestamps are monotonically non-decreasing because events are appended
// live during recording. The log is only mutated by the recorder (or
// replaced wholesale on load); playback reads it sequentially.
type Log struct {
	events []Event
}

// Append adds an event to the end of the log.
func (l *Log) Append(e Event) {
	l.events = append(l.events, e)
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// At returns the event at index i.
func (l *Log) At(i int) Event {
	return l.events[i]
}

// Last returns the final event, or false if the log is empty.
func (l *Log) Last() (Event, bool) {
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// ReplaceAll swaps the entire contents of the log. Loading a file always
// replaces the log wholesale; there is no partial merge.
func (l *Log) ReplaceAll(events []Event) {
	l.events = make([]Event, len(events))
	copy(l.events, events)
}

// Clear removes all events.
func (l *Log) Clear() {
	l.events = l.events[:0]
}
