package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "machines.csv"), []byte("machineId,name\nm1,Press\nm2,Lathe\n"), 0o644))

	records, err := NewService(dir, nil).Load("machines")
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{
		{"machineId": "m1", "name": "Press"},
		{"machineId": "m2", "name": "Lathe"},
	}, records)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewService(t.TempDir(), nil).Load("orders")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUnknownCatalog(t *testing.T) {
	_, err := NewService(t.TempDir(), nil).Load("../secrets")
	assert.ErrorIs(t, err, ErrUnknownCatalog)
}
