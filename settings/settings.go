// Package settings holds the user-toggleable switches of the skip watcher and
// persists them as a JSON blob in the local key-value store.
package settings

import (
	"encoding/json"

	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/storage"
	"github.com/samber/lo"
)

// Name identifies a single toggle. The string value doubles as its JSON key.
type Name string

const (
	Enabled           Name = "enabled"
	AutoStart         Name = "autoStart"
	SkipOpenings      Name = "skipOpenings"
	SkipEndings       Name = "skipEndings"
	ShowNotifications Name = "showNotifications"
)

// Names returns every toggle in display order.
func Names() []Name {
	return []Name{Enabled, AutoStart, SkipOpenings, SkipEndings, ShowNotifications}
}

// Known reports whether s names a toggle.
func Known(s string) bool {
	return lo.Contains(Names(), Name(s))
}

// Label is the caption shown next to the checkbox.
func (n Name) Label() string {
	switch n {
	case Enabled:
		return "Enable AutoSkip"
	case AutoStart:
		return "Start automatically"
	case SkipOpenings:
		return "Skip openings"
	case SkipEndings:
		return "Skip endings"
	case ShowNotifications:
		return "Show notifications"
	default:
		return string(n)
	}
}

// Settings is the flat set of toggles. All fields are always present.
type Settings struct {
	Enabled           bool `json:"enabled" jsonschema:"title=Enable AutoSkip,default=true"`
	AutoStart         bool `json:"autoStart" jsonschema:"title=Start automatically,default=true"`
	SkipOpenings      bool `json:"skipOpenings" jsonschema:"title=Skip openings,default=true"`
	SkipEndings       bool `json:"skipEndings" jsonschema:"title=Skip endings,default=true"`
	ShowNotifications bool `json:"showNotifications" jsonschema:"title=Show notifications,default=true"`
}

// Defaults returns every toggle switched on.
func Defaults() Settings {
	return Settings{
		Enabled:           true,
		AutoStart:         true,
		SkipOpenings:      true,
		SkipEndings:       true,
		ShowNotifications: true,
	}
}

func (s *Settings) field(n Name) *bool {
	switch n {
	case Enabled:
		return &s.Enabled
	case AutoStart:
		return &s.AutoStart
	case SkipOpenings:
		return &s.SkipOpenings
	case SkipEndings:
		return &s.SkipEndings
	case ShowNotifications:
		return &s.ShowNotifications
	default:
		return nil
	}
}

// Get returns the value of n and whether n is a known toggle.
func (s Settings) Get(n Name) (value, ok bool) {
	f := s.field(n)
	if f == nil {
		return false, false
	}
	return *f, true
}

// Set assigns n. Unknown names are ignored and reported with false.
func (s *Settings) Set(n Name, value bool) bool {
	f := s.field(n)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// Map renders the toggles as the persisted mapping.
func (s Settings) Map() map[string]bool {
	m := make(map[string]bool, len(Names()))
	for _, n := range Names() {
		m[string(n)], _ = s.Get(n)
	}
	return m
}

// Load reads the persisted blob under storageKey. Missing or unparsable blobs yield an empty mapping.
func Load(kv storage.KV, storageKey string) map[string]any {
	raw, ok := kv.Get(storageKey).Get()
	if !ok || raw == "" {
		return map[string]any{}
	}

	var persisted map[string]any
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil || persisted == nil {
		log.Warnf("ignoring malformed settings under %q: %v", storageKey, err)
		return map[string]any{}
	}
	return persisted
}

// Merge applies persisted booleans for known toggles on top of the defaults.
// Unknown keys and non-boolean values are dropped.
func Merge(persisted map[string]any) Settings {
	s := Defaults()
	for k, v := range persisted {
		b, isBool := v.(bool)
		if !isBool {
			continue
		}
		s.Set(Name(k), b)
	}
	return s
}

// Save writes the full mapping under storageKey.
func Save(kv storage.KV, storageKey string, s Settings) error {
	data, err := json.Marshal(s.Map())
	if err != nil {
		return err
	}
	return kv.Set(storageKey, string(data))
}
