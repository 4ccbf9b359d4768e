package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidLimit is returned when a stack limit is not a positive integer.
	ErrInvalidLimit = errors.New("stack limit must be a positive integer")
	// ErrInvalidKey is returned when an override key is empty or zero.
	ErrInvalidKey = errors.New("invalid override key")
	// ErrUnknownKind is returned when an override kind is not id, name or prefab.
	ErrUnknownKind = errors.New("unknown override kind")
	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be a positive integer")
)

const (
	// DefaultLimit is the stack limit used when nothing is configured.
	DefaultLimit = 1000
	// DefaultBatchSize is the number of queued generators applied per tick.
	DefaultBatchSize = 20
	// DefaultCleanupInterval is the sweep interval used when nothing is configured.
	DefaultCleanupInterval = 60 * time.Second
)

// KeyKind names one of the three override tables.
type KeyKind string

const (
	// KindID selects the network identity table.
	KindID KeyKind = "id"
	// KindName selects the short name table.
	KindName KeyKind = "name"
	// KindPrefab selects the prefab path table.
	KindPrefab KeyKind = "prefab"
)

// Key addresses a single override entry.
type Key struct {
	Kind KeyKind
	// ID is set for KindID keys.
	ID uint64
	// Text is set for KindName and KindPrefab keys.
	Text string
}

// IDKey returns the identity key for id.
func IDKey(id uint64) Key { return Key{Kind: KindID, ID: id} }

// NameKey returns the short name key for name.
func NameKey(name string) Key { return Key{Kind: KindName, Text: name} }

// PrefabKey returns the prefab key for prefab.
func PrefabKey(prefab string) Key { return Key{Kind: KindPrefab, Text: prefab} }

// ParseKey builds a Key from command input.
// Zero is rejected as an identity because it is the host's "unassigned" value.
func ParseKey(kind, value string) (Key, error) {
	value = strings.TrimSpace(value)
	switch KeyKind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindID:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %q is not a network id", ErrInvalidKey, value)
		}
		return IDKey(id), IDKey(id).Validate()
	case KindName:
		return NameKey(value), NameKey(value).Validate()
	case KindPrefab:
		return PrefabKey(value), PrefabKey(value).Validate()
	default:
		return Key{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Validate checks that the key can address an override entry.
func (k Key) Validate() error {
	switch k.Kind {
	case KindID:
		if k.ID == 0 {
			return fmt.Errorf("%w: network id 0 is reserved for unassigned generators", ErrInvalidKey)
		}
	case KindName, KindPrefab:
		if k.Text == "" {
			return fmt.Errorf("%w: empty %s", ErrInvalidKey, k.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, k.Kind)
	}
	return nil
}

// String returns the key as "kind:value".
func (k Key) String() string {
	if k.Kind == KindID {
		return string(k.Kind) + ":" + strconv.FormatUint(k.ID, 10)
	}
	return string(k.Kind) + ":" + k.Text
}

// Settings is the process-wide reconciliation configuration.
// A Settings value is treated as immutable once handed to an Engine; the
// With* helpers return modified copies.
type Settings struct {
	// DefaultLimit applies when no override matches.
	DefaultLimit int `json:"default_limit"`

	// ByID overrides the limit per network identity.
	ByID map[uint64]int `json:"by_id"`

	// ByName overrides the limit per short name.
	ByName map[string]int `json:"by_name"`

	// ByPrefab overrides the limit per prefab path.
	ByPrefab map[string]int `json:"by_prefab"`

	// Allow lists the actors allowed to run mutating commands. Empty means everyone.
	Allow []string `json:"allow"`

	// Deny lists actors that may never run mutating commands.
	Deny []string `json:"deny"`

	// BatchEnabled defers first-time reconciliation to the tick loop.
	BatchEnabled bool `json:"batch_enabled"`

	// BatchSize caps how many queued generators are applied per tick.
	BatchSize int `json:"batch_size"`

	// CleanupInterval is the time between sweeps. Zero disables sweeping.
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// DefaultSettings returns the settings used when the store is empty.
func DefaultSettings() Settings {
	return Settings{
		DefaultLimit:    DefaultLimit,
		ByID:            map[uint64]int{},
		ByName:          map[string]int{},
		ByPrefab:        map[string]int{},
		BatchEnabled:    true,
		BatchSize:       DefaultBatchSize,
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Validate checks the invariants of the settings.
func (s Settings) Validate() error {
	if s.DefaultLimit <= 0 {
		return fmt.Errorf("default limit %d: %w", s.DefaultLimit, ErrInvalidLimit)
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, s.BatchSize)
	}
	if s.CleanupInterval < 0 {
		return fmt.Errorf("cleanup interval must not be negative: %s", s.CleanupInterval)
	}
	for id, limit := range s.ByID {
		if id == 0 {
			return fmt.Errorf("%w: network id 0 is reserved for unassigned generators", ErrInvalidKey)
		}
		if limit <= 0 {
			return fmt.Errorf("override id:%d: %w", id, ErrInvalidLimit)
		}
	}
	for name, limit := range s.ByName {
		if limit <= 0 {
			return fmt.Errorf("override name:%s: %w", name, ErrInvalidLimit)
		}
	}
	for prefab, limit := range s.ByPrefab {
		if limit <= 0 {
			return fmt.Errorf("override prefab:%s: %w", prefab, ErrInvalidLimit)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	out.ByID = make(map[uint64]int, len(s.ByID))
	for k, v := range s.ByID {
		out.ByID[k] = v
	}
	out.ByName = make(map[string]int, len(s.ByName))
	for k, v := range s.ByName {
		out.ByName[k] = v
	}
	out.ByPrefab = make(map[string]int, len(s.ByPrefab))
	for k, v := range s.ByPrefab {
		out.ByPrefab[k] = v
	}
	out.Allow = append([]string(nil), s.Allow...)
	out.Deny = append([]string(nil), s.Deny...)
	return out
}

// Override returns the override stored under key, if any.
func (s Settings) Override(key Key) (int, bool) {
	var (
		limit int
		ok    bool
	)
	switch key.Kind {
	case KindID:
		limit, ok = s.ByID[key.ID]
	case KindName:
		limit, ok = s.ByName[key.Text]
	case KindPrefab:
		limit, ok = s.ByPrefab[key.Text]
	}
	return limit, ok
}

// WithOverride returns a copy of s with key set to limit.
func (s Settings) WithOverride(key Key, limit int) (Settings, error) {
	if err := key.Validate(); err != nil {
		return s, err
	}
	if limit <= 0 {
		return s, ErrInvalidLimit
	}
	out := s.Clone()
	switch key.Kind {
	case KindID:
		out.ByID[key.ID] = limit
	case KindName:
		out.ByName[key.Text] = limit
	case KindPrefab:
		out.ByPrefab[key.Text] = limit
	}
	return out, nil
}

// WithoutOverride returns a copy of s with key removed.
// The boolean reports whether the key was present.
func (s Settings) WithoutOverride(key Key) (Settings, bool) {
	if _, ok := s.Override(key); !ok {
		return s, false
	}
	out := s.Clone()
	switch key.Kind {
	case KindID:
		delete(out.ByID, key.ID)
	case KindName:
		delete(out.ByName, key.Text)
	case KindPrefab:
		delete(out.ByPrefab, key.Text)
	}
	return out, true
}

// WithDefault returns a copy of s with a new global default.
func (s Settings) WithDefault(limit int) (Settings, error) {
	if limit <= 0 {
		return s, ErrInvalidLimit
	}
	out := s.Clone()
	out.DefaultLimit = limit
	return out, nil
}

// OverrideEntry is one row of the override listing.
type OverrideEntry struct {
	Kind  KeyKind `json:"kind"`
	Key   string  `json:"key"`
	Limit int     `json:"limit"`
}

// Overrides lists every override entry sorted by kind then key.
func (s Settings) Overrides() []OverrideEntry {
	entries := make([]OverrideEntry, 0, len(s.ByID)+len(s.ByName)+len(s.ByPrefab))
	for id, limit := range s.ByID {
		entries = append(entries, OverrideEntry{Kind: KindID, Key: strconv.FormatUint(id, 10), Limit: limit})
	}
	for name, limit := range s.ByName {
		entries = append(entries, OverrideEntry{Kind: KindName, Key: name, Limit: limit})
	}
	for prefab, limit := range s.ByPrefab {
		entries = append(entries, OverrideEntry{Kind: KindPrefab, Key: prefab, Limit: limit})
	}
	rank := map[KeyKind]int{KindID: 0, KindName: 1, KindPrefab: 2}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return rank[entries[i].Kind] < rank[entries[j].Kind]
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
