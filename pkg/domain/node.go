package domain

import "github.com/google/uuid"

// RenderStrategy constants define how a primitive is expected to be rendered
// by the host UI layer. The bridge itself never renders; it only carries the
// declared strategy through serialization.
const (
	// RenderDefault re-renders the primitive whenever its props change.
	RenderDefault = "default"
	// RenderMemo skips re-rendering while props are shallow-equal.
	RenderMemo = "memo"
	// RenderLazy defers the first render until the primitive becomes visible.
	RenderLazy = "lazy"
	// RenderStatic renders once and never again.
	RenderStatic = "static"
)

// ValidRenderStrategy reports whether s is a member of the closed strategy set.
func ValidRenderStrategy(s string) bool {
	switch s {
	case RenderDefault, RenderMemo, RenderLazy, RenderStatic:
		return true
	}
	return false
}

// PrimitiveNode is a single addressable node in a live UI component tree.
// The tree is a strict hierarchy: every node has at most one parent and
// children order is meaningful and preserved across all operations.
type PrimitiveNode struct {
	ID             string
	Type           string
	Props          map[string]any
	Children       []*PrimitiveNode
	RenderStrategy string
}

// NewPrimitiveNode creates a node with a freshly generated id.
// A nil props map is normalized to an empty one so that prop merges
// never have to nil-check.
func NewPrimitiveNode(typ string, props map[string]any, strategy string) *PrimitiveNode {
	if props == nil {
		props = make(map[string]any)
	}
	if strategy == "" {
		strategy = RenderDefault
	}
	return &PrimitiveNode{
		ID:             uuid.NewString(),
		Type:           typ,
		Props:          props,
		RenderStrategy: strategy,
	}
}

// MergeProps overwrites the node's props with the given entries in place.
// Keys absent from updates are left untouched. A nil props map, as on a
// hand-built node that skipped NewPrimitiveNode, is allocated on demand.
func (n *PrimitiveNode) MergeProps(updates map[string]any) {
	if n.Props == nil && len(updates) > 0 {
		n.Props = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		n.Props[k] = v
	}
}

// InsertChild places child at the given index among the node's children,
// shifting later siblings right. An index beyond the current length appends.
func (n *PrimitiveNode) InsertChild(child *PrimitiveNode, index int) {
	if index < 0 || index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
}

// RemoveChild detaches the child at index, preserving the order of the
// remaining siblings. Out-of-range indices are ignored.
func (n *PrimitiveNode) RemoveChild(index int) {
	if index < 0 || index >= len(n.Children) {
		return
	}
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
}
