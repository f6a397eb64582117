package performer

// Scheduler replays the recording log against a wall-clock reference.
//
// It is driven by the host's frame loop: each Tick compares the elapsed
// time to the next pending event and fires every event that has come due.
// After the last event fires, the scheduler stays in the playing state
// until the final note's tail has sounded, so the ending is not cut off.
type Scheduler struct {
	log     *Log
	playing bool
	startMS int64
	cursor  int
}

// NewScheduler creates a scheduler reading from log.
func NewScheduler(log *Log) *Scheduler {
	return &Scheduler{log: log}
}

// Start begins playback at nowMS. It returns false without changing state
// when the log is empty, so an optimistic UI toggle can be reverted.
func (s *Scheduler) Start(nowMS int64) bool {
	if s.log.Len() == 0 {
		return false
	}
	s.startMS = nowMS
	s.cursor = 0
	s.playing = true
	return true
}

// Stop halts playback immediately and resets the cursor, regardless of the
// natural-end wait. Stopping the audio outputs is the caller's job.
func (s *Scheduler) Stop() {
	s.playing = false
	s.cursor = 0
}

// Playing reports whether playback is active, including the tail wait
// after the final event has fired.
func (s *Scheduler) Playing() bool {
	return s.playing
}

// Tick fires every event due at nowMS through trigger, in log order.
// Once the cursor has passed the last event, playback ends only after
// elapsed >= last timestamp + noteDurationMS; Tick then returns true
// exactly once and the scheduler goes idle.
func (s *Scheduler) Tick(nowMS int64, noteDurationMS int, trigger func(note int)) (finished bool) {
	if !s.playing {
		return false
	}

	elapsed := nowMS - s.startMS

	for s.cursor < s.log.Len() && s.log.At(s.cursor).TimestampMS <= elapsed {
		trigger(s.log.At(s.cursor).Note)
		s.cursor++
	}

	if s.cursor < s.log.Len() {
		return false
	}

	last, ok := s.log.Last()
	if !ok {
		// Log emptied mid-playback; treat as finished.
		s.Stop()
		return true
	}
	if elapsed < last.TimestampMS+int64(noteDurationMS) {
		return false
	}

	s.Stop()
	return true
}
