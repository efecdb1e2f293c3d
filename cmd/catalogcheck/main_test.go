package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_EmbeddedCatalogPasses(t *testing.T) {
	var out bytes.Buffer
	code := run("", &out)
	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "Plants: 12, profiles: 48")
	assert.NotContains(t, out.String(), "FAIL")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	code := run(filepath.Join(t.TempDir(), "nope.json"), &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "FATAL: read catalog")
}

func TestRun_ReportsBadPlants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `[{"id":"1","name":"Fern","category":"","difficulty":"Trivial","sunRequirement":"Full Sun","tags":[],"benefits":[],"hardinessZones":["4a"]}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	var out bytes.Buffer
	code := run(path, &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "missing category")
	assert.Contains(t, out.String(), `unknown difficulty "Trivial"`)
	assert.Contains(t, out.String(), "no tags")
}
