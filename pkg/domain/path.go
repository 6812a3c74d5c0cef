package domain

import (
	"fmt"
	"strings"
)

// Resolution is the result of a path walk: the resolved node plus explicit
// links to its parent and its positional index among siblings. Parent is nil
// and Index is -1 when the resolved node is the root itself.
type Resolution struct {
	Node   *PrimitiveNode
	Parent *PrimitiveNode
	Index  int
}

// IsRoot reports whether the resolution landed on the tree root.
func (r Resolution) IsRoot() bool {
	return r.Parent == nil
}

// Resolve walks root by an ordered sequence of type tags.
//
// An empty path denotes the root itself. A non-empty path must begin with the
// root's own type; each following segment descends into the FIRST child (in
// document order) whose type equals the segment. First-match-wins is the
// documented tie-break when several siblings share a type: children order is
// authoritative, never incidental.
func Resolve(root *PrimitiveNode, path []string) (Resolution, error) {
	if root == nil {
		return Resolution{}, fmt.Errorf("resolve: nil root: %w", ErrPathNotFound)
	}
	if len(path) == 0 {
		return Resolution{Node: root, Parent: nil, Index: -1}, nil
	}
	if path[0] != root.Type {
		return Resolution{}, fmt.Errorf("resolve %q: root is %q, not %q: %w",
			strings.Join(path, "/"), root.Type, path[0], ErrPathNotFound)
	}

	current := Resolution{Node: root, Parent: nil, Index: -1}
	for _, segment := range path[1:] {
		next, ok := firstChildOfType(current.Node, segment)
		if !ok {
			return Resolution{}, fmt.Errorf("resolve %q: no child of type %q under %q: %w",
				strings.Join(path, "/"), segment, current.Node.Type, ErrPathNotFound)
		}
		current = next
	}
	return current, nil
}

func firstChildOfType(parent *PrimitiveNode, typ string) (Resolution, bool) {
	for i, child := range parent.Children {
		if child.Type == typ {
			return Resolution{Node: child, Parent: parent, Index: i}, true
		}
	}
	return Resolution{}, false
}
