package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavePictureWritesUniqueName(t *testing.T) {
	dir := t.TempDir()
	service := UploadService{}

	name1, err := service.SavePicture(strings.NewReader("fake-image-1"), "avatar.jpg", dir)
	assert.NoError(t, err)
	name2, err := service.SavePicture(strings.NewReader("fake-image-2"), "avatar.jpg", dir)
	assert.NoError(t, err)

	// Same original name, different stored names.
	assert.NotEqual(t, name1, name2)
	assert.True(t, strings.HasSuffix(name1, "_avatar.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, name1))
	assert.NoError(t, err)
	assert.Equal(t, "fake-image-1", string(data))
}

func TestSavePictureCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pics")
	service := UploadService{}

	name, err := service.SavePicture(strings.NewReader("x"), "a.png", dir)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"avatar.jpg", "avatar.jpg"},
		{"../../../etc/passwd", "passwd"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"..", "file"},
		{"", "file"},
		{"spaţiu roşu.jpeg", "spa_iu_ro_u.jpeg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}
