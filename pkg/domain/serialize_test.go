package domain_test

import (
	"testing"

	"github.com/openmotif/motif/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_Structure(t *testing.T) {
	root := buildTree()

	out := domain.Serialize(root)

	assert.Equal(t, root.ID, out.ID)
	assert.Equal(t, "Container", out.Type)
	assert.Equal(t, domain.RenderDefault, out.RenderStrategy)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "Header", out.Children[0].Type)
	assert.Equal(t, "Button", out.Children[1].Type)
	require.Len(t, out.Children[1].Children, 1)
	assert.Equal(t, "Label", out.Children[1].Children[0].Type)
}

func TestSerialize_NeverAliasesLiveTree(t *testing.T) {
	root := buildTree()

	out := domain.Serialize(root)
	out.Props["className"] = "tampered"
	out.Children[1].Props["text"] = "tampered"

	assert.Equal(t, "root", root.Props["className"])
	assert.Equal(t, "first", root.Children[1].Props["text"])
}

func TestSerialize_LeafHasEmptyChildren(t *testing.T) {
	leaf := domain.NewPrimitiveNode("Label", nil, domain.RenderStatic)

	out := domain.Serialize(leaf)

	assert.NotNil(t, out.Children)
	assert.Empty(t, out.Children)
	assert.NotNil(t, out.Props)
}

func TestSerialize_IsStable(t *testing.T) {
	root := buildTree()

	first := domain.Serialize(root)
	second := domain.Serialize(root)

	assert.Equal(t, first, second, "no intervening mutation, identical trees")
}
