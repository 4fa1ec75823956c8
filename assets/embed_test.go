package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileEmbedded(t *testing.T) {
	for _, p := range []string{"snap.wav", "assets/snap.wav", "/somewhere/assets/snap.wav"} {
		b, err := LoadFile(p)
		require.NoError(t, err, p)
		assert.Equal(t, "RIFF", string(b[:4]), p)
	}

	_, err := LoadFile("missing.wav")
	assert.Error(t, err)
	_, err = LoadFile("")
	assert.Error(t, err)
}

func TestLoadFilePrefersDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.wav")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o644))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(b))
}
