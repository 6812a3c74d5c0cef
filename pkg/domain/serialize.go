package domain

// SerializedNode is the plain-data form of a primitive subtree, safe to hand
// to transports and observers. It never aliases the live tree: props are
// shallow-copied and children are serialized recursively.
type SerializedNode struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Props          map[string]any   `json:"props"`
	RenderStrategy string           `json:"renderStrategy"`
	Children       []SerializedNode `json:"children"`
}

// Serialize converts a live node, recursively, into its transmittable form.
// It is pure and side-effect free, and succeeds for any node reachable from a
// registered root (well-formedness is guaranteed at construction).
func Serialize(node *PrimitiveNode) SerializedNode {
	props := make(map[string]any, len(node.Props))
	for k, v := range node.Props {
		props[k] = v
	}
	children := make([]SerializedNode, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, Serialize(child))
	}
	return SerializedNode{
		ID:             node.ID,
		Type:           node.Type,
		Props:          props,
		RenderStrategy: node.RenderStrategy,
		Children:       children,
	}
}
