package performer

import (
	"log/slog"
	"time"

	"github.com/anyeshizhong/midi-performer/pkg/synth"
)

const (
	// Note durations toggled by the sustain switch.
	defaultNoteDurationMS = 1000
	sustainNoteDurationMS = 2000

	// How long a playback-triggered key stays visually pressed.
	visualPressMS = 200

	defaultMasterVolume = 0.8
)

// Performer is the performance core. It owns the recording log and the
// recorder/scheduler state machines, routes note triggers through the tone
// cache to the audio sink, and exposes the sustain and volume settings.
//
// At most one of recording and playback is active at any time; starting
// either one force-stops the other.
type Performer struct {
	log       *Log
	recorder  *Recorder
	scheduler *Scheduler
	cache     *synth.ToneCache
	sink      Sink
	logger    *slog.Logger
	listener  Listener

	noteDurationMS int
	masterVolume   float64

	// visual maps note -> expiry in clock milliseconds for the transient
	// playback press indicator. Best effort: entries surviving a stop are
	// harmless and expire on their own.
	visual map[int]int64

	now func() int64
}

// New creates a performer playing through cache and sink.
func New(cache *synth.ToneCache, sink Sink, logger *slog.Logger) *Performer {
	log := &Log{}
	start := time.Now()
	return &Performer{
		log:            log,
		recorder:       NewRecorder(log),
		scheduler:      NewScheduler(log),
		cache:          cache,
		sink:           sink,
		logger:         logger,
		listener:       nopListener{},
		noteDurationMS: defaultNoteDurationMS,
		masterVolume:   defaultMasterVolume,
		visual:         make(map[int]int64),
		now: func() int64 {
			return time.Since(start).Milliseconds()
		},
	}
}

// SetListener registers the UI listener for state-change notifications.
func (p *Performer) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	p.listener = l
}

// SetClock replaces the monotonic millisecond clock. Tests use this to
// drive the state machines deterministically.
func (p *Performer) SetClock(now func() int64) {
	p.now = now
}

// Log returns the recording log.
func (p *Performer) Log() *Log {
	return p.log
}

// Recording reports whether a recording session is active.
func (p *Performer) Recording() bool {
	return p.recorder.Recording()
}

// Playing reports whether playback is active.
func (p *Performer) Playing() bool {
	return p.scheduler.Playing()
}

// NoteDurationMS returns the current note duration setting.
func (p *Performer) NoteDurationMS() int {
	return p.noteDurationMS
}

// MasterVolume returns the current master volume.
func (p *Performer) MasterVolume() float64 {
	return p.masterVolume
}

// SetSustain toggles the note duration between 1000 ms and 2000 ms.
func (p *Performer) SetSustain(enabled bool) {
	if enabled {
		p.noteDurationMS = sustainNoteDurationMS
	} else {
		p.noteDurationMS = defaultNoteDurationMS
	}
	p.logger.Debug("sustain changed", "enabled", enabled, "note_duration_ms", p.noteDurationMS)
}

// SetMasterVolume sets the playback volume, clamped to [0,1].
func (p *Performer) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.masterVolume = v
}

// NoteTriggered handles one discrete live key press (already debounced by
// the UI). The note is recorded if a session is active, then sounded.
func (p *Performer) NoteTriggered(note int) {
	if p.recorder.Capture(p.now(), note) {
		last, _ := p.log.Last()
		p.logger.Debug("recorded note", "note", note, "timestamp_ms", last.TimestampMS)
	}
	p.playTone(note)
}

// StartRecording begins a new recording session, force-stopping playback
// first. The previous log is cleared.
func (p *Performer) StartRecording() {
	if p.scheduler.Playing() {
		p.StopPlayback()
	}
	p.recorder.Start(p.now())
	p.listener.RecordingStateChanged(true)
	p.logger.Info("recording started")
}

// StopRecording ends the recording session; the log stays available.
func (p *Performer) StopRecording() {
	p.recorder.Stop()
	p.listener.RecordingStateChanged(false)
	p.logger.Info("recording stopped", "events", p.log.Len())
}

// StartPlayback begins replaying the log, force-stopping recording first.
// It returns false when the log is empty and playback did not start.
func (p *Performer) StartPlayback() bool {
	if p.recorder.Recording() {
		p.StopRecording()
	}
	if !p.scheduler.Start(p.now()) {
		p.logger.Info("nothing to play")
		return false
	}
	p.listener.PlaybackStateChanged(true)
	p.logger.Info("playback started", "events", p.log.Len())
	return true
}

// StopPlayback halts playback and all sounding audio immediately. A
// no-op while idle: the sink keeps playing live tones and no state
// notification is sent.
func (p *Performer) StopPlayback() {
	if !p.scheduler.Playing() {
		return
	}
	p.scheduler.Stop()
	p.sink.StopAll()
	p.listener.PlaybackStateChanged(false)
	p.logger.Info("playback stopped")
}

// StopAll stops whichever of recording and playback is active.
func (p *Performer) StopAll() {
	if p.recorder.Recording() {
		p.StopRecording()
	}
	p.StopPlayback()
}

// ReplaceLog force-stops the transport and swaps the log wholesale.
// Callers must invoke this only after a load has fully succeeded, so a
// failed load never disturbs the existing log.
func (p *Performer) ReplaceLog(events []Event) {
	p.StopAll()
	p.log.ReplaceAll(events)
	p.logger.Info("log replaced", "events", len(events))
}

// Tick advances playback and expires visual press indicators. The UI
// calls this once per frame; the rate does not matter, only that the
// clock is monotonic.
func (p *Performer) Tick() {
	nowMS := p.now()

	if p.scheduler.Playing() {
		finished := p.scheduler.Tick(nowMS, p.noteDurationMS, func(note int) {
			p.playTone(note)
			p.visual[note] = nowMS + visualPressMS
			p.logger.Debug("playback note", "note", note)
		})
		if finished {
			p.listener.PlaybackStateChanged(false)
			p.logger.Info("playback finished")
		}
	}

	for note, expiry := range p.visual {
		if nowMS >= expiry {
			delete(p.visual, note)
		}
	}

	p.sink.Cleanup()
}

// VisualActive reports whether the note's transient playback press
// indicator is still within its 200 ms window.
func (p *Performer) VisualActive(note int) bool {
	expiry, ok := p.visual[note]
	return ok && p.now() < expiry
}

// playTone renders (or fetches) the tone for the current duration setting
// and hands it to the sink at the master volume. Failures are logged and
// swallowed; a bad tone must not take down the performance.
func (p *Performer) playTone(note int) {
	buf, err := p.cache.GetOrRender(note, p.noteDurationMS)
	if err != nil {
		p.logger.Error("tone rendering failed", "note", note, "error", err)
		return
	}
	if err := p.sink.PlayTone(buf, p.masterVolume); err != nil {
		p.logger.Error("tone playback failed", "note", note, "error", err)
	}
}
