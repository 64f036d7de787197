//go:build !windows

package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/autoskip-cli/autoskip/key"
	"github.com/spf13/viper"
)

// fakeMPV speaks enough of mpv's JSON-IPC protocol for the player tests.
type fakeMPV struct {
	path string
	ln   net.Listener

	mu          sync.Mutex
	props       map[string]any
	commands    [][]any
	observers   map[net.Conn]struct{}
	interleave  bool
	holdRestart bool
}

func newFakeMPV(t *testing.T) *fakeMPV {
	t.Helper()

	// Unix socket paths are length limited, t.TempDir() can be too long on macOS.
	dir, err := os.MkdirTemp("", "as")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{
		path:      path,
		ln:        ln,
		props:     map[string]any{"pid": 4242.0},
		observers: map[net.Conn]struct{}{},
	}
	go f.accept()

	t.Cleanup(func() {
		_ = ln.Close()
		f.closeObservers()
		_ = os.RemoveAll(dir)
	})

	return f
}

func (f *fakeMPV) accept() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req struct {
			Command   []any `json:"command"`
			RequestID int64 `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil || len(req.Command) == 0 {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, req.Command)

		var reply map[string]any
		switch req.Command[0] {
		case "get_property":
			name := fmt.Sprint(req.Command[1])
			if v, ok := f.props[name]; ok {
				reply = map[string]any{"data": v, "error": "success"}
			} else {
				reply = map[string]any{"error": "property unavailable"}
			}
		case "observe_property":
			f.observers[conn] = struct{}{}
			reply = map[string]any{"error": "success"}
		case "seek":
			f.props["time-pos"] = req.Command[1]
			reply = map[string]any{"error": "success"}
		default:
			reply = map[string]any{"error": "success"}
		}
		reply["request_id"] = req.RequestID

		if f.interleave {
			f.writeLocked(conn, map[string]any{"event": "playback-restart"})
			f.writeLocked(conn, map[string]any{"error": "success", "data": -1.0, "request_id": req.RequestID + 1000})
		}
		f.writeLocked(conn, reply)

		if req.Command[0] == "seek" && !f.holdRestart {
			f.pushLocked(map[string]any{"event": "playback-restart"})
		}
		f.mu.Unlock()
	}
}

func (f *fakeMPV) writeLocked(conn net.Conn, v any) {
	line, _ := json.Marshal(v)
	_, _ = conn.Write(append(line, '\n'))
}

func (f *fakeMPV) set(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = value
}

// push delivers a raw event to every connection that observes properties.
func (f *fakeMPV) push(event map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushLocked(event)
}

func (f *fakeMPV) pushLocked(event map[string]any) {
	for conn := range f.observers {
		f.writeLocked(conn, event)
	}
}

// holdRestarts stops the automatic playback-restart after a seek.
func (f *fakeMPV) holdRestarts() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdRestart = true
}

func (f *fakeMPV) pushProperty(name string, value any) {
	f.push(map[string]any{"event": "property-change", "id": 1, "name": name, "data": value})
}

func (f *fakeMPV) closeObservers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.observers {
		_ = conn.Close()
	}
	f.observers = map[net.Conn]struct{}{}
}

// calls returns the arguments of every received command with the given name.
func (f *fakeMPV) calls(name string) [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]any
	for _, c := range f.commands {
		if c[0] == name {
			out = append(out, c[1:])
		}
	}
	return out
}

// answers reports whether m still talks to mpv.
func answers(m *MPV) bool {
	select {
	case <-m.Wait():
		return false
	default:
	}
	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// eventually polls cond for up to two seconds.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func init() {
	viper.Set(key.PlayerBinary, "mpv")
	viper.Set(key.PlayerSocketWaitAttempts, 3)
	viper.Set(key.PlayerSocketWaitDelay, 10)
	viper.Set(key.NotifyOSDDuration, 1500)
}
