package skip

import (
	"errors"
	"sync"

	"github.com/autoskip-cli/autoskip/settings"
)

type fakeSurface struct {
	mu        sync.Mutex
	position  float64
	duration  float64
	known     bool
	seekErr   error
	seeks     []float64
	callbacks map[int]func()
	next      int
	cancels   int
}

func newFakeSurface(duration float64) *fakeSurface {
	return &fakeSurface{duration: duration, known: duration > 0, callbacks: map[int]func(){}}
}

func (f *fakeSurface) Position() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position, nil
}

func (f *fakeSurface) Duration() (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, f.known
}

func (f *fakeSurface) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seekErr != nil {
		return f.seekErr
	}
	f.seeks = append(f.seeks, seconds)
	f.position = seconds
	return nil
}

func (f *fakeSurface) OnTimeUpdate(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.callbacks[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.callbacks, id)
		f.cancels++
	}
}

// tick moves the playhead and fires every registered callback.
func (f *fakeSurface) tick(t float64) {
	f.mu.Lock()
	f.position = t
	fns := make([]func(), 0, len(f.callbacks))
	for _, fn := range f.callbacks {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (f *fakeSurface) listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.callbacks)
}

func (f *fakeSurface) seekCalls() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.seeks...)
}

type fakeLocator struct {
	surface Surface
}

func (l *fakeLocator) Surface() (Surface, bool) {
	return l.surface, l.surface != nil
}

type fakeToast struct {
	mu       sync.Mutex
	messages []string
}

func (t *fakeToast) Show(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
}

func (t *fakeToast) shown() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.messages...)
}

type fakeToggles map[settings.Name]bool

func allOn() fakeToggles {
	t := fakeToggles{}
	for _, n := range settings.Names() {
		t[n] = true
	}
	return t
}

func (t fakeToggles) Enabled(n settings.Name) bool {
	return t[n]
}

type fakeBus struct {
	start, stop func()
}

func (b *fakeBus) OnStart(fn func()) { b.start = fn }
func (b *fakeBus) OnStop(fn func())  { b.stop = fn }

var errSeek = errors.New("seek rejected")
