package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type UploadService struct{}

// SavePicture writes src into dir under a freshly generated unique name:
// a random uuid prefix joined to the sanitized original file name. The
// returned name is what the user row references; the client-supplied name is
// never used as a path. File content is not inspected beyond the extension
// check done upstream by the validation pipeline.
func (s *UploadService) SavePicture(src io.Reader, originalName, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + "_" + sanitizeFilename(originalName)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// sanitizeFilename strips any path components and rewrites runes outside
// [A-Za-z0-9._-] so the stored name is safe to join with the target dir.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "file"
	}
	return out
}
