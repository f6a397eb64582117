package performer

// Recorder captures live note triggers into the log with timestamps
// relative to the start of the recording session.
//
// It is a two-state machine (idle, recording). Starting a session clears
// the log and captures the wall-clock reference; stopping keeps the log
// available for playback and saving.
type Recorder struct {
	log       *Log
	recording bool
	startMS   int64
}

// NewRecorder creates a recorder writing into log.
func NewRecorder(log *Log) *Recorder {
	return &Recorder{log: log}
}

// Start clears the log and begins a new recording session at nowMS.
func (r *Recorder) Start(nowMS int64) {
	r.log.Clear()
	r.startMS = nowMS
	r.recording = true
}

// Stop ends the recording session. The recorded log stays available.
func (r *Recorder) Stop() {
	r.recording = false
}

// Recording reports whether a session is active.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Capture appends (nowMS - start, note) to the log if a session is active.
// It returns true when the event was recorded. Playback echoes must never
// reach this method; only live key input does.
func (r *Recorder) Capture(nowMS int64, note int) bool {
	if !r.recording {
		return false
	}
	r.log.Append(Event{TimestampMS: nowMS - r.startMS, Note: note})
	return true
}
