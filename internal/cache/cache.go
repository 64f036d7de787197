// Package cache prunes stale files autoskip leaves behind.
package cache

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/autoskip-cli/autoskip/filesystem"
	"github.com/autoskip-cli/autoskip/log"
)

// TTL is how long log files and cached responses are kept.
const TTL = 7 * 24 * time.Hour

// CollectGarbage removes regular files under dir last modified before now minus ttl.
// It returns the number of removed files.
func CollectGarbage(dir string, ttl time.Duration, now time.Time) int {
	var removed int
	afs := filesystem.API()

	_ = afs.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if now.Sub(info.ModTime()) <= ttl {
			return nil
		}

		if err := afs.Remove(path); err != nil {
			log.Warnf("prune %s: %v", filepath.Base(path), err)
			return nil
		}
		removed++
		return nil
	})

	if removed > 0 {
		log.Infof("pruned %d stale file(s) from %s", removed, dir)
	}
	return removed
}
