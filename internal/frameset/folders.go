package frameset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Folder is a directory that may hold a frame sequence.
type Folder struct {
	Name    string
	Path    string
	Frames  int // matching images directly inside the folder
	ModTime time.Time
}

// ListFolders returns the visible subdirectories of dir with their frame
// counts, sorted by name. Subdirectories that cannot be read are listed with
// zero frames.
func ListFolders(dir string, exts []string) ([]Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var folders []Folder
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f := Folder{Name: e.Name(), Path: path}
		if info, err := e.Info(); err == nil {
			f.ModTime = info.ModTime()
		}
		if frames, err := Scan(path, exts); err == nil {
			f.Frames = len(frames)
		}
		folders = append(folders, f)
	}

	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}
