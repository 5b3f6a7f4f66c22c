package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cat := Default()

	assert.Equal(t, int64(500), cat.StartingBank)
	assert.Equal(t, map[string]int{
		"Cattleman Revolver": 1,
		"Hunting Knife":      1,
	}, cat.StartingWeapons)

	assert.Contains(t, cat.Weapons, "Cattleman Revolver")
	assert.Contains(t, cat.Mounts, "Arabian")
	assert.Contains(t, cat.Permits, "Hunting License")
	assert.Contains(t, cat.Properties, "Shady Belle")

	// The starting kit must be orderable through the catalog
	for name := range cat.StartingWeapons {
		assert.True(t, Contains(cat.Weapons, name))
	}
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte("starting_bank: 1000\nweapons:\n  - Pitchfork\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cat.StartingBank)
	assert.Equal(t, []string{"Pitchfork"}, cat.Weapons)

	// Fields absent from the file keep their defaults
	assert.Equal(t, Default().Mounts, cat.Mounts)
	assert.Equal(t, Default().StartingWeapons, cat.StartingWeapons)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	items := []string{"Morgan", "Arabian"}

	assert.True(t, Contains(items, "Morgan"))
	assert.False(t, Contains(items, "morgan"))
	assert.False(t, Contains(items, "Mustang"))
	assert.False(t, Contains(nil, "Morgan"))
}
