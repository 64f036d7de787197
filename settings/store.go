package settings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/storage"
	"github.com/samber/lo"
)

// ErrModalUnavailable is returned by a Modal that cannot be shown, e.g. without a terminal.
var ErrModalUnavailable = errors.New("modal surface unavailable")

// UnavailableMessage is the alert shown when the settings form cannot be rendered.
const UnavailableMessage = "Settings are only available in an interactive terminal"

// Field is one checkbox of the settings form.
type Field struct {
	Name    Name
	Label   string
	Checked bool
}

// Modal renders a titled checkbox form and reports each change through onToggle.
// Open blocks until the form is closed.
type Modal interface {
	Open(title string, fields []Field, onToggle func(Name, bool)) error
}

// Store owns the in-memory settings shared by the watcher and the form.
// Every mutation is persisted immediately.
type Store struct {
	mu         sync.RWMutex
	kv         storage.KV
	storageKey string
	current    Settings
}

// Open builds a Store from defaults merged with whatever parses from kv.
func Open(kv storage.KV, storageKey string) *Store {
	return &Store{
		kv:         kv,
		storageKey: storageKey,
		current:    Merge(Load(kv, storageKey)),
	}
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Enabled is a shorthand for Snapshot().Get(n).
func (s *Store) Enabled(n Name) bool {
	v, _ := s.Snapshot().Get(n)
	return v
}

// Toggle sets n to value and saves. The in-memory value changes even when saving fails.
func (s *Store) Toggle(n Name, value bool) error {
	s.mu.Lock()
	if !s.current.Set(n, value) {
		s.mu.Unlock()
		return fmt.Errorf("unknown setting %q", n)
	}
	snapshot := s.current
	s.mu.Unlock()

	log.WithFields(log.Fields{"setting": n, "value": value}).Info("setting changed")
	return Save(s.kv, s.storageKey, snapshot)
}

// Reset restores the defaults and saves them.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.current = Defaults()
	snapshot := s.current
	s.mu.Unlock()

	return Save(s.kv, s.storageKey, snapshot)
}

// Fields describes the form in display order.
func (s *Store) Fields() []Field {
	snapshot := s.Snapshot()
	return lo.Map(Names(), func(n Name, _ int) Field {
		v, _ := snapshot.Get(n)
		return Field{Name: n, Label: n.Label(), Checked: v}
	})
}

// Present opens the settings form on modal. Each change is applied and saved
// before onToggle (optional) is called. When the modal cannot be shown the
// user is told through alert instead.
func (s *Store) Present(modal Modal, alert func(string), onToggle func(Name, bool)) error {
	if modal == nil {
		alert(UnavailableMessage)
		return nil
	}

	err := modal.Open(constant.PluginName, s.Fields(), func(n Name, v bool) {
		if err := s.Toggle(n, v); err != nil {
			log.Warnf("saving setting %s: %v", n, err)
		}
		if onToggle != nil {
			onToggle(n, v)
		}
	})

	if errors.Is(err, ErrModalUnavailable) {
		alert(UnavailableMessage)
		return nil
	}
	return err
}
