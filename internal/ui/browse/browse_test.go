package browse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"empty", "shots"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"001.png", "002.png"} {
		if err := os.WriteFile(filepath.Join(dir, "shots", name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func loaded(t *testing.T, dir string) FolderListModel {
	t.Helper()
	m := NewFolderList(dir, nil, 80, 40)
	m, _ = m.Update(m.Init()())
	return m
}

func press(m FolderListModel, k tea.KeyMsg) (FolderListModel, tea.Msg) {
	m, cmd := m.Update(k)
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func TestFolderList_LoadsFolders(t *testing.T) {
	dir := setupTree(t)
	m := loaded(t, dir)

	// parent entry plus two folders
	if got := len(m.list.Items()); got != 3 {
		t.Fatalf("expected 3 items, got %d", got)
	}
	view := m.View()
	if !strings.Contains(view, "2 folders") {
		t.Errorf("view should count folders: %q", view)
	}
}

func TestFolderList_SelectFolderWithFrames(t *testing.T) {
	dir := setupTree(t)
	m := loaded(t, dir)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	_, msg := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	sel, ok := msg.(FolderSelected)
	if !ok {
		t.Fatalf("expected FolderSelected, got %T", msg)
	}
	if sel.Path != filepath.Join(dir, "shots") {
		t.Errorf("Path = %q", sel.Path)
	}
}

func TestFolderList_EnterOpensEmptyFolder(t *testing.T) {
	dir := setupTree(t)
	m := loaded(t, dir)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, msg := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := msg.(foldersLoadedMsg); !ok {
		t.Fatalf("expected a directory listing, got %T", msg)
	}
	m, _ = m.Update(msg)
	if m.Dir() != filepath.Join(dir, "empty") {
		t.Errorf("Dir() = %q", m.Dir())
	}
}

func TestFolderList_PlayHere(t *testing.T) {
	dir := setupTree(t)
	m := loaded(t, filepath.Join(dir, "shots"))

	_, msg := press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	sel, ok := msg.(FolderSelected)
	if !ok || sel.Path != filepath.Join(dir, "shots") {
		t.Errorf("expected FolderSelected for current dir, got %#v", msg)
	}
}

func TestFolderList_Back(t *testing.T) {
	m := loaded(t, setupTree(t))
	_, msg := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := msg.(GoBack); !ok {
		t.Errorf("expected GoBack, got %T", msg)
	}
}

func TestFolderList_MissingDir(t *testing.T) {
	m := loaded(t, filepath.Join(t.TempDir(), "gone"))
	if !strings.Contains(m.View(), "Error") {
		t.Error("view should show the listing error")
	}
}

func TestFormatFrames(t *testing.T) {
	tests := map[int]string{0: "no frames", 1: "1 frame", 12: "12 frames"}
	for n, want := range tests {
		if got := formatFrames(n); got != want {
			t.Errorf("formatFrames(%d) = %q, want %q", n, got, want)
		}
	}
}
