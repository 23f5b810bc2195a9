package frameset

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader decodes frames from disk. It remembers the most recently decoded
// frame so repeated requests for an unchanged file skip decoding.
type Loader struct {
	path    string
	modTime time.Time
	size    int64
	img     image.Image
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the image at path.
func (l *Loader) Load(path string) (image.Image, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading frame: %w", err)
	}
	if l.img != nil && path == l.path && st.ModTime().Equal(l.modTime) && st.Size() == l.size {
		return l.img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	l.path = path
	l.modTime = st.ModTime()
	l.size = st.Size()
	l.img = img
	return img, nil
}
