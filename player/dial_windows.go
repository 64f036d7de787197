//go:build windows

package player

import (
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/Microsoft/go-winio"
)

const pipePrefix = `\\.\pipe\`

// dial connects to mpv's named pipe. Bare names are placed under \\.\pipe\.
func dial(socketPath string) (net.Conn, error) {
	if !strings.HasPrefix(socketPath, pipePrefix) {
		socketPath = pipePrefix + filepath.Base(socketPath)
	}

	timeout := 5 * time.Second
	return winio.DialPipe(socketPath, &timeout)
}

func newSocketPath(name string) string {
	return pipePrefix + name
}

// Named pipes disappear with their server.
func removeSocket(string) {}
