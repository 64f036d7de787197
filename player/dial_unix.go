//go:build !windows

package player

import (
	"net"
	"os"
	"path/filepath"
)

func dial(socketPath string) (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

func newSocketPath(name string) string {
	return filepath.Join(os.TempDir(), name+".sock")
}

func removeSocket(socketPath string) {
	_ = os.Remove(socketPath)
}
