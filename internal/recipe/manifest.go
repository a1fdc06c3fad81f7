package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/traits/pkg/types"
)

// Manifest is a YAML document declaring traits and compositions:
//
//	traits:
//	  - name: Atacante
//	    methods:
//	      ataque: {op: const, value: 10}
//	compositions:
//	  - name: Guerrero
//	    operands: [{trait: Atacante}, {trait: Defensor}]
type Manifest struct {
	Traits       []types.TraitRecord       `yaml:"traits"`
	Compositions []types.CompositionRecord `yaml:"compositions"`
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest and validates every record in it. Unknown
// keys are rejected. An empty document yields an empty manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidRecipe, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks each record and rejects names declared twice within the
// same section.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Traits))
	for i := range m.Traits {
		rec := &m.Traits[i]
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("trait %d (%s): %w", i, rec.Name, err)
		}
		if seen[rec.Name] {
			return fmt.Errorf("trait %s: %w", rec.Name, types.ErrDuplicateName)
		}
		seen[rec.Name] = true
	}
	seen = make(map[string]bool, len(m.Compositions))
	for i := range m.Compositions {
		rec := &m.Compositions[i]
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("composition %d (%s): %w", i, rec.Name, err)
		}
		if seen[rec.Name] {
			return fmt.Errorf("composition %s: %w", rec.Name, types.ErrDuplicateName)
		}
		seen[rec.Name] = true
	}
	return nil
}

// TraitRecord returns the trait declared under name.
func (m *Manifest) TraitRecord(name string) (*types.TraitRecord, error) {
	for i := range m.Traits {
		if m.Traits[i].Name == name {
			return &m.Traits[i], nil
		}
	}
	return nil, fmt.Errorf("trait %q: %w", name, types.ErrNotFound)
}

// CompositionRecord returns the composition declared under name.
func (m *Manifest) CompositionRecord(name string) (*types.CompositionRecord, error) {
	for i := range m.Compositions {
		if m.Compositions[i].Name == name {
			return &m.Compositions[i], nil
		}
	}
	return nil, fmt.Errorf("composition %q: %w", name, types.ErrNotFound)
}
