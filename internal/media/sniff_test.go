package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unera-social/unera-tui/pkg/models"
)

func TestKindForMIME(t *testing.T) {
	assert.Equal(t, models.StoryVideo, KindForMIME("video/mp4"))
	assert.Equal(t, models.StoryVideo, KindForMIME("video/webm"))
	assert.Equal(t, models.StoryImage, KindForMIME("image/png"))
	assert.Equal(t, models.StoryImage, KindForMIME("image/jpeg"))
	assert.Equal(t, models.StoryImage, KindForMIME("application/octet-stream"))
}

func TestKindForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	require.NoError(t, os.WriteFile(path, pngHeader, 0644))

	kind, err := KindForFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.StoryImage, kind)
}

func TestKindForFileMissing(t *testing.T) {
	_, err := KindForFile(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}
