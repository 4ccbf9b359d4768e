package stacks

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"stack-manager/core/reconcile"

	"gopkg.in/yaml.v3"
)

// Document is the portable form of Settings used for snapshot export and
// for YAML seed files. Pointer and zero fields mean "keep the current value"
// when a document is merged.
type Document struct {
	Version                int            `json:"version" yaml:"version"`
	DefaultLimit           int            `json:"default_limit,omitempty" yaml:"default_limit,omitempty"`
	Overrides              OverrideTables `json:"overrides" yaml:"overrides"`
	Allow                  []string       `json:"allow,omitempty" yaml:"allow,omitempty"`
	Deny                   []string       `json:"deny,omitempty" yaml:"deny,omitempty"`
	BatchEnabled           *bool          `json:"batch_enabled,omitempty" yaml:"batch_enabled,omitempty"`
	BatchSize              int            `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`
	CleanupIntervalSeconds *float64       `json:"cleanup_interval_seconds,omitempty" yaml:"cleanup_interval_seconds,omitempty"`
}

// OverrideTables holds the three override maps of a Document.
type OverrideTables struct {
	IDs     map[uint64]int `json:"ids,omitempty" yaml:"ids,omitempty"`
	Names   map[string]int `json:"names,omitempty" yaml:"names,omitempty"`
	Prefabs map[string]int `json:"prefabs,omitempty" yaml:"prefabs,omitempty"`
}

// DocumentFrom returns the full document for settings.
func DocumentFrom(settings reconcile.Settings) Document {
	s := settings.Clone()
	batch := s.BatchEnabled
	cleanup := s.CleanupInterval.Seconds()

	allow := append([]string(nil), s.Allow...)
	deny := append([]string(nil), s.Deny...)
	sort.Strings(allow)
	sort.Strings(deny)

	return Document{
		Version:      CurrentVersion,
		DefaultLimit: s.DefaultLimit,
		Overrides: OverrideTables{
			IDs:     s.ByID,
			Names:   s.ByName,
			Prefabs: s.ByPrefab,
		},
		Allow:                  allow,
		Deny:                   deny,
		BatchEnabled:           &batch,
		BatchSize:              s.BatchSize,
		CleanupIntervalSeconds: &cleanup,
	}
}

// MergeInto returns base with every field set in d applied on top.
// Override entries and actor names are added; nothing is removed.
func (d Document) MergeInto(base reconcile.Settings) (reconcile.Settings, error) {
	out := base.Clone()

	if d.DefaultLimit != 0 {
		out.DefaultLimit = d.DefaultLimit
	}
	if d.BatchEnabled != nil {
		out.BatchEnabled = *d.BatchEnabled
	}
	if d.BatchSize != 0 {
		out.BatchSize = d.BatchSize
	}
	if d.CleanupIntervalSeconds != nil {
		out.CleanupInterval = reconcile.SecondsToDuration(*d.CleanupIntervalSeconds)
	}

	var err error
	for id, limit := range d.Overrides.IDs {
		if out, err = out.WithOverride(reconcile.IDKey(id), limit); err != nil {
			return base, fmt.Errorf("override id:%d: %w", id, err)
		}
	}
	for name, limit := range d.Overrides.Names {
		if out, err = out.WithOverride(reconcile.NameKey(name), limit); err != nil {
			return base, fmt.Errorf("override name:%s: %w", name, err)
		}
	}
	for prefab, limit := range d.Overrides.Prefabs {
		if out, err = out.WithOverride(reconcile.PrefabKey(prefab), limit); err != nil {
			return base, fmt.Errorf("override prefab:%s: %w", prefab, err)
		}
	}

	out.Allow = mergeNames(out.Allow, d.Allow)
	out.Deny = mergeNames(out.Deny, d.Deny)

	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

func mergeNames(current, extra []string) []string {
	seen := make(map[string]struct{}, len(current))
	for _, name := range current {
		seen[name] = struct{}{}
	}
	for _, name := range extra {
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		current = append(current, name)
	}
	return current
}

// DecodeYAML parses a YAML settings document. Unknown fields are rejected.
func DecodeYAML(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("failed to parse settings document: %w", err)
	}
	return doc, nil
}

// LoadSeedFile reads a YAML settings document from path.
func LoadSeedFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeYAML(bytes.NewReader(data))
}
