package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/albedo/internal/catalog"
)

func TestCatalogList(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		setupCLITest(t)
		out, err := executeCmd(t, "catalog", "list")
		require.NoError(t, err)
		for _, want := range []string{"SURFACE", "Reflective Paint", "Tata Power", "INR 1,500", "-10°C", "Parking"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("json for one surface via alias", func(t *testing.T) {
		setupCLITest(t)
		out, err := executeCmd(t, "catalog", "list", "--category", "parking", "--output", "json")
		require.NoError(t, err)

		var opts []catalog.MaterialOption
		require.NoError(t, json.Unmarshal([]byte(out), &opts))
		require.Len(t, opts, 3)
		assert.Equal(t, catalog.BaselineID, opts[0].ID)
		for _, o := range opts {
			assert.Equal(t, catalog.CategoryGround, o.Category)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		setupCLITest(t)
		_, err := executeCmd(t, "catalog", "list", "--category", "basement")
		require.ErrorIs(t, err, catalog.ErrUnknownCategory)
	})

	t.Run("unknown format", func(t *testing.T) {
		setupCLITest(t)
		_, err := executeCmd(t, "catalog", "list", "--output", "csv")
		require.Error(t, err)
	})
}

func TestCatalogExportAndValidate(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "materials.yaml")

	out, err := executeCmd(t, "catalog", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `schema_version: "1.0"`)

	_, err = executeCmd(t, "catalog", "export", "--out", path)
	require.NoError(t, err)

	out, err = executeCmd(t, "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Catalog is valid: 9 options")
	assert.Contains(t, out, "Garden: 3")

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("schema_version: \"2.0\"\noptions: []\n"), 0o600))
	_, err = executeCmd(t, "catalog", "validate", broken)
	require.ErrorIs(t, err, catalog.ErrUnsupportedSchema)

	_, err = executeCmd(t, "catalog", "validate")
	require.Error(t, err, "a file argument is required")
}
