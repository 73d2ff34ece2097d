package upload

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxImageSize  = 10 * 1024 * 1024 // 10 MB decoded
	StaticURLBase = "/static/uploads"
)

// allowedImageExts maps the media subtype from the data URI to the file
// extension we store under.
var allowedImageExts = map[string]string{
	"jpeg": ".jpg",
	"jpg":  ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// Store persists recipe images submitted as base64 data URIs
// ("data:image/png;base64,....") and hands back the URL they will be
// served from.
type Store struct {
	baseDir    string
	staticBase string
}

func NewStore(baseDir string) *Store {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &Store{baseDir: baseDir, staticBase: StaticURLBase}
}

// SaveBase64 decodes a data URI, writes the image under a date-based
// subdirectory with a unique name, and returns its public URL.
func (s *Store) SaveBase64(payload string) (string, error) {
	mediaType, data, ok := splitDataURI(payload)
	if !ok {
		return "", ErrInvalidImage
	}

	subtype := strings.TrimPrefix(mediaType, "image/")
	ext, allowed := allowedImageExts[subtype]
	if subtype == mediaType || !allowed {
		return "", ErrInvalidImageType
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidImage
	}
	if len(raw) == 0 {
		return "", ErrInvalidImage
	}
	if len(raw) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	absPath := filepath.Join(absDir, filename)
	if err := os.WriteFile(absPath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	relPath := relDir + "/" + filename
	return s.staticBase + "/" + relPath, nil
}

// splitDataURI pulls the media type and base64 body out of a data URI.
func splitDataURI(payload string) (mediaType, data string, ok bool) {
	if !strings.HasPrefix(payload, "data:") {
		return "", "", false
	}
	rest := payload[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", false
	}
	return rest[:sep], rest[sep+len(";base64,"):], true
}
