package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout of a world seed.
//
//	generators:
//	  - network_id: 42
//	    name: generator.small
//	    amounts: [5000, 120]
type SeedFile struct {
	Generators []SpawnSpec `yaml:"generators"`
}

// LoadSeed reads a world seed from path.
func LoadSeed(path string) ([]SpawnSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world seed: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse world seed: %w", err)
	}
	for i, spec := range seed.Generators {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("generator %d: %w", i, err)
		}
	}
	return seed.Generators, nil
}

// Populate spawns every spec in w and returns how many were placed.
func (w *World) Populate(specs []SpawnSpec) (int, error) {
	for i, spec := range specs {
		if _, err := w.Spawn(spec); err != nil {
			return i, err
		}
	}
	return len(specs), nil
}
