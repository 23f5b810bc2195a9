// Package frameset discovers the image files of a flipbook directory,
// watches the directory for changes and decodes individual frames.
package frameset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultExtensions are the image types picked up when none are configured.
var DefaultExtensions = []string{"jpg", "png"}

// FrameInfo holds file metadata about a single frame.
type FrameInfo struct {
	Index   int // 0-based position in the frame set
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Scan lists the frames in dir: regular, non-hidden files whose extension
// is in exts (case-insensitive), ordered by name. It does not recurse.
func Scan(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}

	allowed := extensionSet(exts)
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !allowed[normalizeExt(filepath.Ext(name))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// Describe stats each path of a frame set.
func Describe(paths []string) ([]FrameInfo, error) {
	infos := make([]FrameInfo, 0, len(paths))
	for i, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat frame %d: %w", i+1, err)
		}
		infos = append(infos, FrameInfo{
			Index:   i,
			Name:    filepath.Base(path),
			Path:    path,
			Size:    st.Size(),
			ModTime: st.ModTime(),
		})
	}
	return infos, nil
}

// NormalizeExtensions lower-cases, strips dots and de-duplicates a list of
// extensions, falling back to DefaultExtensions when the result is empty.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ext := range exts {
		e := normalizeExt(ext)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool)
	for _, ext := range NormalizeExtensions(exts) {
		set[ext] = true
	}
	return set
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
