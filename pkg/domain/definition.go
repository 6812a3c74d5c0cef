package domain

import "fmt"

// PrimitiveDef is the plain, transmittable description of a primitive subtree
// as supplied by a caller (wire payloads, YAML manifests). Instantiate turns
// it into live nodes with freshly generated ids.
type PrimitiveDef struct {
	Type           string         `json:"type" yaml:"type" mapstructure:"type"`
	Props          map[string]any `json:"props,omitempty" yaml:"props,omitempty" mapstructure:"props"`
	Children       []PrimitiveDef `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
	RenderStrategy string         `json:"renderStrategy,omitempty" yaml:"renderStrategy,omitempty" mapstructure:"renderStrategy"`
}

// Validate checks the definition recursively without instantiating it.
func (d PrimitiveDef) Validate() error {
	if d.Type == "" {
		return fmt.Errorf("primitive definition: %w", ErrMissingType)
	}
	if d.RenderStrategy != "" && !ValidRenderStrategy(d.RenderStrategy) {
		return fmt.Errorf("primitive definition %q: unknown render strategy %q", d.Type, d.RenderStrategy)
	}
	for i, child := range d.Children {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("child %d of %q: %w", i, d.Type, err)
		}
	}
	return nil
}

// Instantiate builds a live subtree from the definition. Every node receives
// a new id; props maps are copied so later mutations of the definition do not
// leak into the tree.
func (d PrimitiveDef) Instantiate() (*PrimitiveNode, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.instantiate(), nil
}

func (d PrimitiveDef) instantiate() *PrimitiveNode {
	props := make(map[string]any, len(d.Props))
	for k, v := range d.Props {
		props[k] = v
	}
	node := NewPrimitiveNode(d.Type, props, d.RenderStrategy)
	for _, child := range d.Children {
		node.Children = append(node.Children, child.instantiate())
	}
	return node
}
