package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openmotif/motif/internal/manifest"
	"github.com/openmotif/motif/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validManifest = `
components:
  app:
    type: Container
    props:
      className: shell
    children:
      - type: Header
        props:
          title: Motif
      - type: Button
        props:
          text: OK
        renderStrategy: memo
  sidebar:
    type: Panel
`

func TestLoad_And_Apply(t *testing.T) {
	path := writeManifest(t, validManifest)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	require.Len(t, m.Components, 2)

	reg := registry.New()
	require.NoError(t, m.Apply(reg))

	root, ok := reg.Component("app")
	require.True(t, ok)
	assert.Equal(t, "Container", root.Type)
	assert.Equal(t, "shell", root.Props["className"])
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Header", root.Children[0].Type)
	assert.Equal(t, "memo", root.Children[1].RenderStrategy)
	assert.NotEmpty(t, root.ID)
	assert.NotEqual(t, root.ID, root.Children[0].ID)

	_, ok = reg.Component("sidebar")
	assert.True(t, ok)
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty manifest", "components: {}"},
		{"missing type", "components:\n  app:\n    props:\n      x: 1\n"},
		{"bad render strategy", "components:\n  app:\n    type: Container\n    renderStrategy: eager\n"},
		{"not yaml", "{{{{"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manifest.Load(writeManifest(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
