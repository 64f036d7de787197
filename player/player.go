// Package player binds the skip watcher to a media player.
// The implementation targets mpv via its JSON-IPC interface.
package player

import (
	"context"
	"time"
)

// Player is the set of mpv capabilities a Session relies on.
type Player interface {
	// Play launches the player on target and waits for its control channel.
	Play(ctx context.Context, target, title string) error

	// Attach binds to a player that is already running on socketPath.
	Attach(ctx context.Context, socketPath string) error

	// TimePos retrieves the current absolute playback position in seconds.
	TimePos() (float64, error)

	// Duration retrieves the length of the active media file in seconds.
	Duration() (float64, error)

	// Seek moves playback to an absolute timestamp in seconds.
	Seek(seconds float64) error

	// ShowText displays a message on the player's OSD.
	ShowText(msg string, d time.Duration) error

	// ChapterCount reports how many chapters the current file already has.
	ChapterCount() (int, error)

	// SetChapters replaces the chapter markers of the current file.
	SetChapters(chapters []Chapter) error

	// Socket returns the IPC channel identifier.
	Socket() string

	// Close terminates a launched player and releases its resources.
	Close() error

	// Wait returns a channel that is closed when the playback process terminates.
	Wait() <-chan struct{}
}

var _ Player = (*MPV)(nil)
