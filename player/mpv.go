package player

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/autoskip-cli/autoskip/config"
	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/host"
	"github.com/autoskip-cli/autoskip/key"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/util"
	"github.com/spf13/viper"
)

// MPV drives an mpv instance through its JSON-IPC protocol.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits or Close is called
	exitOnce   sync.Once
	mu         sync.Mutex // serializes IPC round trips
	requestID  atomic.Int64

	waitAttempts int
	waitDelay    time.Duration
}

// NewMPV creates an MPV handle configured from viper. Nothing is started.
func NewMPV() *MPV {
	return &MPV{
		binary:       viper.GetString(key.PlayerBinary),
		exited:       make(chan struct{}),
		waitAttempts: viper.GetInt(key.PlayerSocketWaitAttempts),
		waitDelay:    config.Millis(key.PlayerSocketWaitDelay),
	}
}

// Play launches mpv on target and waits until its IPC socket accepts connections.
func (m *MPV) Play(ctx context.Context, target, title string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	safeTitle := sanitizeTitle(title)
	if safeTitle == "" {
		safeTitle = filepath.Base(safeTarget)
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := newSocketPath(fmt.Sprintf("%s-%x", constant.Autoskip, randomBytes))

	// Only the socket, title and target. The user's mpv.conf decides the rest.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		"--force-window=yes",
		"--",
		safeTarget,
	}

	binary := m.binary
	if binary == "" {
		binary = "mpv"
	}

	m.cmd = exec.Command(binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}
	log.Infof("started %s (pid %d) for %s", binary, m.cmd.Process.Pid, safeTarget)

	// Reap the process so it never lingers as a zombie.
	go func() {
		_ = m.cmd.Wait()
		m.markExited()
	}()

	m.mu.Lock()
	m.socketPath = socketPath
	m.mu.Unlock()

	if err := m.awaitSocket(ctx); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Attach binds to an mpv that is already running with --input-ipc-server=socketPath.
func (m *MPV) Attach(ctx context.Context, socketPath string) error {
	if strings.TrimSpace(socketPath) == "" {
		return fmt.Errorf("empty socket path")
	}

	m.mu.Lock()
	m.socketPath = socketPath
	m.mu.Unlock()

	if err := m.awaitSocket(ctx); err != nil {
		return fmt.Errorf("attach %s: %w", socketPath, err)
	}

	log.Infof("attached to mpv at %s", socketPath)
	return nil
}

func (m *MPV) awaitSocket(ctx context.Context) error {
	probe := func(context.Context) (string, error) {
		select {
		case <-m.exited:
			return "", fmt.Errorf("%w: exited before the socket was ready", ErrNotRunning)
		default:
		}

		conn, err := dial(m.socketPath)
		if err != nil {
			return "", err
		}
		_ = conn.Close()
		return m.socketPath, nil
	}

	_, err := host.Await[string](ctx, probe, m.waitAttempts, m.waitDelay).Get()
	return err
}

func (m *MPV) markExited() {
	m.exitOnce.Do(func() { close(m.exited) })
}

func (m *MPV) nextID() int64 {
	return m.requestID.Add(1)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socketPath
}

// TimePos returns the current playback position in seconds.
func (m *MPV) TimePos() (float64, error) {
	return m.floatProperty("time-pos")
}

// Duration returns the length of the current file in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.floatProperty("duration")
}

// Seek jumps to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute+exact")
	return err
}

// ShowText displays msg on the OSD for the given duration.
func (m *MPV) ShowText(msg string, d time.Duration) error {
	_, err := m.sendCommand("show-text", msg, d.Milliseconds())
	return err
}

// Quit asks mpv to exit.
func (m *MPV) Quit() error {
	_, err := m.sendCommand("quit")
	return err
}

// Close shuts mpv down when this process launched it and cleans up the socket.
// An attached mpv is left running.
func (m *MPV) Close() error {
	if m.Socket() == "" {
		return nil
	}

	if m.cmd == nil {
		m.markExited()
		return nil
	}

	util.Ignore(m.Quit)

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	removeSocket(m.Socket())
	return nil
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		if data == nil {
			return 0, fmt.Errorf("%s: %w", name, ErrPropertyUnavailable)
		}
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}

	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("%s: %w", name, ErrPropertyUnavailable)
	}

	return val, nil
}

// sanitizeMediaTarget accepts http(s) URLs and local paths, and rejects anything mpv could read as a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
