package position

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "position.json")
	store := NewFileStore(path)

	want := Position{
		X: 120, Y: 80, W: 900, H: 700,
		Scale:      125,
		Maximized:  true,
		MonitorCRC: 0xdeadbeef,
	}
	require.NoError(t, store.Write(want))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_MissingFileYieldsZero(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "position.json"))

	got, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, Position{}, got)
	assert.True(t, got.Unset())
}

func TestFileStore_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "position.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Read()
	assert.Error(t, err)
}

func TestPosition_Unset(t *testing.T) {
	assert.True(t, Position{}.Unset())
	assert.True(t, Position{X: 10, Y: 10, W: 800}.Unset())
	assert.True(t, Position{H: 600}.Unset())
	assert.False(t, Position{W: 800, H: 600}.Unset())
}

func TestPosition_Equal(t *testing.T) {
	a := Position{X: 1, Y: 2, W: 800, H: 600, Scale: 100, MonitorCRC: 7}
	b := a
	assert.True(t, a.Equal(b))

	b.Maximized = true
	assert.False(t, a.Equal(b))
}
