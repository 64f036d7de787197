package player

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/autoskip-cli/autoskip/config"
	"github.com/autoskip-cli/autoskip/key"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/skip"
)

// seekSettle bounds how long time-pos samples are held back after a seek
// when mpv never reports playback-restart.
const seekSettle = 2 * time.Second

// Session tracks the file mpv is playing and exposes it to the watcher:
// it is the surface locator, the playback bus and an OSD sink at once.
type Session struct {
	player      Player
	listener    *EventListener
	osdDuration time.Duration

	mu          sync.Mutex
	loaded      bool
	position    float64
	hasPosition bool
	duration    float64
	hasDuration bool
	seeking     bool
	seekExpiry  time.Time
	subscriber  func()
	subID       uint64
	starts      []func()
	stops       []func()
}

// NewSession wraps a started or attached player.
func NewSession(p Player) *Session {
	return &Session{
		player:      p,
		osdDuration: config.Millis(key.NotifyOSDDuration),
	}
}

// Start begins listening to the player. If a file is already playing,
// start handlers run right away.
func (s *Session) Start() error {
	s.listener = NewEventListener(s.player.Socket(), s.handle)
	if err := s.listener.Start(); err != nil {
		return err
	}

	if pos, err := s.player.TimePos(); err == nil {
		s.mu.Lock()
		s.position, s.hasPosition = pos, true
		s.mu.Unlock()
		log.Info("playback already in progress")
		s.handle(Event{Name: EventFileLoaded})
	}

	return nil
}

// Stop detaches from the player's events.
func (s *Session) Stop() {
	if s.listener != nil {
		s.listener.Stop()
	}
}

// Done is closed when the player connection ends.
func (s *Session) Done() <-chan struct{} {
	if s.listener == nil {
		return nil
	}
	return s.listener.Done()
}

// OnStart registers fn to run whenever a file finishes loading.
func (s *Session) OnStart(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, fn)
}

// OnStop registers fn to run when a file ends or the player goes away.
func (s *Session) OnStop(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops = append(s.stops, fn)
}

// Surface returns the video surface while a file is loaded.
func (s *Session) Surface() (skip.Surface, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, false
	}
	return &surface{session: s}, true
}

// Notify shows msg on the OSD.
func (s *Session) Notify(msg string) error {
	return s.player.ShowText(msg, s.osdDuration)
}

// PublishChapters marks the skip windows on the player's timeline.
// Files that carry their own chapters are left untouched.
func (s *Session) PublishChapters(w skip.Windows) {
	n, err := s.player.ChapterCount()
	switch {
	case err == nil && n > 0:
		log.Debugf("file has %d chapters, not publishing skip markers", n)
		return
	case err != nil && !errors.Is(err, ErrPropertyUnavailable):
		log.Warnf("read chapters: %v", err)
		return
	}

	d, known := (&surface{session: s}).Duration()
	chapters := Chapters(w, d, known)
	if len(chapters) == 0 {
		return
	}
	if err := s.player.SetChapters(chapters); err != nil {
		log.Warnf("publish chapters: %v", err)
	}
}

func (s *Session) handle(e Event) {
	switch e.Name {
	case EventPropertyChange:
		s.handleProperty(e.Property, e.Data)
	case EventPlaybackRestart:
		s.mu.Lock()
		s.seeking = false
		s.mu.Unlock()
	case EventStartFile:
		s.mu.Lock()
		s.loaded = false
		s.seeking = false
		s.hasPosition, s.hasDuration = false, false
		s.mu.Unlock()
	case EventFileLoaded:
		s.mu.Lock()
		s.loaded = true
		s.seeking = false
		handlers := append([]func(){}, s.starts...)
		s.mu.Unlock()
		log.Debug("file loaded")
		run(handlers)
	case EventEndFile, EventIdle, EventShutdown:
		s.mu.Lock()
		wasLoaded := s.loaded
		s.loaded = false
		s.subscriber = nil
		handlers := append([]func(){}, s.stops...)
		s.mu.Unlock()
		if wasLoaded || e.Name == EventShutdown {
			log.Debugf("playback stopped (%s)", e.Name)
			run(handlers)
		}
	}
}

func (s *Session) handleProperty(name string, data any) {
	value, ok := data.(float64)
	if ok && (math.IsNaN(value) || math.IsInf(value, 0)) {
		ok = false
	}

	s.mu.Lock()
	switch name {
	case "duration":
		s.duration, s.hasDuration = value, ok && value > 0
		s.mu.Unlock()
	case "time-pos":
		// Samples queued before a seek lands still carry the old position.
		if s.seeking && time.Now().Before(s.seekExpiry) {
			s.mu.Unlock()
			return
		}
		s.seeking = false
		s.position, s.hasPosition = value, ok
		fn := s.subscriber
		if !ok || !s.loaded {
			fn = nil
		}
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	default:
		s.mu.Unlock()
	}
}

func run(handlers []func()) {
	for _, fn := range handlers {
		fn()
	}
}

// surface is the skip.Surface view of a Session.
type surface struct {
	session *Session
}

func (v *surface) Position() (float64, error) {
	s := v.session
	s.mu.Lock()
	pos, ok := s.position, s.hasPosition
	s.mu.Unlock()
	if ok {
		return pos, nil
	}
	return s.player.TimePos()
}

func (v *surface) Duration() (float64, bool) {
	s := v.session
	s.mu.Lock()
	d, ok := s.duration, s.hasDuration
	s.mu.Unlock()
	if ok {
		return d, true
	}

	d, err := s.player.Duration()
	if err != nil {
		if !errors.Is(err, ErrPropertyUnavailable) {
			log.Debugf("duration: %v", err)
		}
		return 0, false
	}
	return d, d > 0
}

// Seek moves playback and holds back time-pos samples until mpv reports
// the restart, so the cached position reads as the seek target meanwhile.
func (v *surface) Seek(seconds float64) error {
	s := v.session
	s.mu.Lock()
	prevPos, prevHas := s.position, s.hasPosition
	s.seeking, s.seekExpiry = true, time.Now().Add(seekSettle)
	s.position, s.hasPosition = seconds, true
	s.mu.Unlock()

	if err := s.player.Seek(seconds); err != nil {
		s.mu.Lock()
		s.seeking = false
		s.position, s.hasPosition = prevPos, prevHas
		s.mu.Unlock()
		return fmt.Errorf("seek to %.2f: %w", seconds, err)
	}
	return nil
}

// OnTimeUpdate replaces the current subscriber with fn.
func (v *surface) OnTimeUpdate(fn func()) (cancel func()) {
	s := v.session
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subID++
	id := s.subID
	s.subscriber = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.subID == id {
			s.subscriber = nil
		}
	}
}
