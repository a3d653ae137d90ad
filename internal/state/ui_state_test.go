package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	st := Load(t.TempDir())
	assert.True(t, st.Receipt.Visible, "receipt panel is visible by default")
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui-state.json"), []byte("{not json"), 0644))

	st := Load(dir)
	assert.Equal(t, DefaultUIState(), st)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".ultrai")

	st := DefaultUIState()
	st.Receipt.Visible = false
	require.NoError(t, Save(dir, st))

	loaded := Load(dir)
	assert.False(t, loaded.Receipt.Visible)
}
