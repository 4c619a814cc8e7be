package creative

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	payload := `[
		{"id": "tpl-1", "name": "Single listing", "multi_property": false,
		 "slots": [{"id": "hero", "name": "Hero", "order": 0, "default_image_index": 0}]},
		{"id": "tpl-2", "name": "Portfolio digest", "multi_property": true}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	template, err := catalog.Template(t.Context(), "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Single listing", template.Name)
	assert.Len(t, template.Slots, 1)

	_, err = catalog.Template(t.Context(), "tpl-ghost")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestLoadCatalog_EmptyPath(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	_, err = catalog.Template(t.Context(), "anything")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestLoadCatalog_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
}
