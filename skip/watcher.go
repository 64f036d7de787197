package skip

import (
	"math"
	"sync"

	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/settings"
	"github.com/autoskip-cli/autoskip/util"
)

// Notification texts shown after a jump.
const (
	OpeningSkipped = "Opening skipped"
	EndingSkipped  = "Ending skipped"
)

// DefaultDebounce is the number of seconds after a jump during which no rule fires.
const DefaultDebounce = 5.0

// Surface is the host's active video element.
type Surface interface {
	// Position returns the current playback time in seconds.
	Position() (float64, error)
	// Duration returns the stream length; ok is false while it is unknown.
	Duration() (seconds float64, ok bool)
	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64) error
	// OnTimeUpdate subscribes fn to time updates and returns its cancel function.
	OnTimeUpdate(fn func()) (cancel func())
}

// Locator discovers the current video surface, if any.
type Locator interface {
	Surface() (Surface, bool)
}

// Toast shows a short transient message.
type Toast interface {
	Show(msg string)
}

// Toggles exposes the user switches the watcher reads on every sample.
type Toggles interface {
	Enabled(settings.Name) bool
}

// Bus delivers playback start and stop notifications.
type Bus interface {
	OnStart(fn func())
	OnStop(fn func())
}

// State of the watcher.
type State int

const (
	Detached State = iota
	Attached
)

func (s State) String() string {
	if s == Attached {
		return "attached"
	}
	return "detached"
}

// Options tune a Watcher. The zero value uses DefaultWindows and no debounce.
type Options struct {
	Windows  Windows
	Debounce float64
	// OnAttach runs after a surface has been attached, outside the watcher lock.
	OnAttach func(Surface, Windows)
}

// Watcher is the Detached/Attached state machine driving automatic skips.
type Watcher struct {
	mu      sync.Mutex
	toggles Toggles
	locator Locator
	toast   Toast
	opts    Options

	surface    Surface
	cancel     func()
	active     Windows
	lastSkip   float64
	generation uint64
}

// New returns a detached Watcher.
func New(toggles Toggles, locator Locator, toast Toast, opts Options) *Watcher {
	if opts.Windows == (Windows{}) {
		opts.Windows = DefaultWindows()
	}
	return &Watcher{
		toggles: toggles,
		locator: locator,
		toast:   toast,
		opts:    opts,
	}
}

// Bind subscribes the watcher to playback notifications on bus.
func (w *Watcher) Bind(bus Bus) {
	bus.OnStart(w.OnPlaybackStart)
	bus.OnStop(w.OnPlaybackStop)
}

// State returns Attached while a time-update callback is registered.
func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.surface != nil {
		return Attached
	}
	return Detached
}

// OnPlaybackStart attaches to the current surface. It is a no-op when the
// watcher is disabled or no surface can be found. A previous attachment is
// released first, so at most one callback is registered at a time.
func (w *Watcher) OnPlaybackStart() {
	if !w.toggles.Enabled(settings.Enabled) {
		log.Debug("playback started while disabled, not attaching")
		return
	}

	surface, ok := w.locator.Surface()
	if !ok || surface == nil {
		log.Debug("playback started but no video surface is available")
		return
	}

	w.mu.Lock()
	w.detachLocked()
	w.generation++
	gen := w.generation
	w.surface = surface
	w.active = w.opts.Windows
	w.lastSkip = 0
	w.cancel = surface.OnTimeUpdate(func() { w.check(gen) })
	windows := w.active
	w.mu.Unlock()

	log.Infof("attached: opening %s, ending %s (relative=%t)", windows.Opening, windows.Ending, windows.EndingRelative)

	if w.opts.OnAttach != nil {
		w.opts.OnAttach(surface, windows)
	}
}

// OnPlaybackStop releases the surface. Safe to call at any time.
func (w *Watcher) OnPlaybackStop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.surface != nil {
		log.Info("detached")
	}
	w.detachLocked()
}

func (w *Watcher) detachLocked() {
	if w.cancel != nil {
		w.cancel()
	}
	w.cancel = nil
	w.surface = nil
	// Invalidates callbacks already in flight for the released surface.
	w.generation++
}

// CheckSkip evaluates both rules against the current sample.
func (w *Watcher) CheckSkip() {
	w.mu.Lock()
	gen := w.generation
	w.mu.Unlock()
	w.check(gen)
}

func (w *Watcher) check(gen uint64) {
	w.mu.Lock()
	if w.surface == nil || gen != w.generation {
		w.mu.Unlock()
		return
	}

	messages := w.evaluateLocked()
	w.mu.Unlock()

	if len(messages) == 0 || w.toast == nil || !w.toggles.Enabled(settings.ShowNotifications) {
		return
	}
	for _, msg := range messages {
		w.toast.Show(msg)
	}
}

// evaluateLocked applies the opening and ending rules independently and
// returns the notifications to emit.
func (w *Watcher) evaluateLocked() []string {
	t, err := w.surface.Position()
	if err != nil {
		return nil
	}
	d, known := w.surface.Duration()
	if known && (math.IsNaN(d) || math.IsInf(d, 0) || d <= 0) {
		known = false
	}

	if w.opts.Debounce > 0 && math.Abs(t-w.lastSkip) < w.opts.Debounce {
		return nil
	}

	var messages []string

	if w.toggles.Enabled(settings.SkipOpenings) && w.active.Opening.Contains(t) {
		target := w.active.Opening.End
		if w.seekLocked(t, target) {
			messages = append(messages, OpeningSkipped)
		}
	}

	if w.toggles.Enabled(settings.SkipEndings) && known {
		if ending, ok := w.active.ResolveEnding(d, known); ok && ending.Contains(t) {
			target := util.Clamp(d-1, 0, d)
			if w.seekLocked(t, target) {
				messages = append(messages, EndingSkipped)
			}
		}
	}

	return messages
}

func (w *Watcher) seekLocked(from, to float64) bool {
	if err := w.surface.Seek(to); err != nil {
		log.Warnf("seek %.2f -> %.2f failed: %v", from, to, err)
		return false
	}
	w.lastSkip = to
	log.WithFields(log.Fields{"from": from, "to": to}).Info("skipped")
	return true
}
