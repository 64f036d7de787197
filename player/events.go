package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/autoskip-cli/autoskip/log"
	"github.com/samber/lo"
)

// mpv event names forwarded by the listener.
const (
	EventPropertyChange = "property-change"
	EventStartFile      = "start-file"
	EventFileLoaded     = "file-loaded"
	EventEndFile        = "end-file"
	EventIdle           = "idle"
	EventShutdown       = "shutdown"
	// EventPlaybackRestart follows every completed seek.
	EventPlaybackRestart = "playback-restart"
)

// Event is a single notification from mpv.
// Property and Data are set for property changes only.
type Event struct {
	Name     string
	Property string
	Data     any
}

// EventCallback receives events on the listener's goroutine.
type EventCallback func(Event)

// observed are the properties mpv pushes to the listener.
var observed = []string{"time-pos", "duration"}

var forwarded = []string{EventStartFile, EventFileLoaded, EventEndFile, EventIdle, EventShutdown, EventPlaybackRestart}

// EventListener keeps a persistent connection to mpv and forwards its events.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	stopped   bool
	done      chan struct{}
	doneOnce  sync.Once
}

// NewEventListener creates a listener for the given socket. Nothing is dialed yet.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		done:       make(chan struct{}),
	}
}

// Start opens the connection, subscribes to property changes on it and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}
	if el.stopped {
		return errors.New("event listener already stopped")
	}

	conn, err := dial(el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// Observers are bound to the connection that registered them.
	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{Command: []any{"observe_property", i + 1, name}})
		if err != nil {
			_ = conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			_ = conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop(conn)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observed)
	return nil
}

// Stop closes the connection. No events are delivered afterwards.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.stopped = true
	if el.conn != nil {
		_ = el.conn.Close()
	}
	if !el.listening {
		el.closeDone()
	}
	el.listening = false
}

func (el *EventListener) closeDone() {
	el.doneOnce.Do(func() { close(el.done) })
}

// Done is closed once the read loop has ended.
func (el *EventListener) Done() <-chan struct{} {
	return el.done
}

func (el *EventListener) readLoop(conn net.Conn) {
	sawShutdown := false

	defer func() {
		el.mu.Lock()
		deliberate := el.stopped
		el.listening = false
		el.mu.Unlock()

		if !deliberate && !sawShutdown {
			log.Info("mpv connection closed")
			el.emit(Event{Name: EventShutdown})
		}
		el.closeDone()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		event, ok := parseEvent(scanner.Bytes())
		if !ok {
			continue
		}
		if event.Name == EventShutdown {
			sawShutdown = true
		}
		el.emit(event)
	}

	if err := scanner.Err(); err != nil && !el.isStopped() {
		log.Warnf("event listener read error: %v", err)
	}
}

func (el *EventListener) isStopped() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.stopped
}

func (el *EventListener) emit(event Event) {
	if el.callback == nil || el.isStopped() {
		return
	}
	el.callback(event)
}

// parseEvent decodes one line from mpv. Replies and unknown events are dropped.
func parseEvent(line []byte) (Event, bool) {
	var raw struct {
		Event string `json:"event"`
		Name  string `json:"name"`
		Data  any    `json:"data"`
	}
	if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
		return Event{}, false
	}

	switch {
	case raw.Event == EventPropertyChange:
		if raw.Name == "" {
			return Event{}, false
		}
		return Event{Name: raw.Event, Property: raw.Name, Data: raw.Data}, true
	case lo.Contains(forwarded, raw.Event):
		return Event{Name: raw.Event}, true
	default:
		return Event{}, false
	}
}
