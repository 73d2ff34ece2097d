package upload

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

func dataURI(mediaType string, raw []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestStore_SaveBase64_Success(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	url, err := store.SaveBase64(dataURI("image/png", tinyPNG))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, StaticURLBase+"/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	rel := strings.TrimPrefix(url, StaticURLBase+"/")
	saved, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, tinyPNG, saved)
}

func TestStore_SaveBase64_NotADataURI(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.SaveBase64("https://example.com/image.png")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestStore_SaveBase64_BadBase64(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.SaveBase64("data:image/png;base64,@@not-base64@@")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestStore_SaveBase64_DisallowedType(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.SaveBase64(dataURI("image/svg+xml", []byte("<svg/>")))
	assert.ErrorIs(t, err, ErrInvalidImageType)

	_, err = store.SaveBase64(dataURI("application/pdf", []byte("%PDF")))
	assert.ErrorIs(t, err, ErrInvalidImageType)
}

func TestStore_SaveBase64_EmptyPayload(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.SaveBase64("data:image/png;base64,")
	assert.ErrorIs(t, err, ErrInvalidImage)
}
