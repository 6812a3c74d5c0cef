package manifest

import (
	"fmt"
	"os"

	"github.com/openmotif/motif/pkg/domain"
	"github.com/openmotif/motif/pkg/registry"
	"gopkg.in/yaml.v3"
)

// Manifest declares the initial component trees a bridge process starts with.
type Manifest struct {
	Components map[string]domain.PrimitiveDef `yaml:"components"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}
	return &m, nil
}

// Validate checks every declared component definition.
func (m *Manifest) Validate() error {
	if len(m.Components) == 0 {
		return fmt.Errorf("no components declared")
	}
	for name, def := range m.Components {
		if name == "" {
			return fmt.Errorf("component with empty name")
		}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
	}
	return nil
}

// Apply instantiates every declared component and registers it.
func (m *Manifest) Apply(reg *registry.Registry) error {
	for name, def := range m.Components {
		root, err := def.Instantiate()
		if err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
		reg.RegisterComponent(name, root)
	}
	return nil
}
