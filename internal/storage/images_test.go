package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save("ferro.png", strings.NewReader("img-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Fatalf("expected extension preserved, got %q", path)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "img-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestRemoveCountsOutcomes(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save("helio.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	store.Remove(path)
	if _, err := os.Stat(filepath.Join(dir, path)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed")
	}

	store.Remove("nao-existe.png")

	removed, failed := store.Counters()
	if removed != 1 || failed != 1 {
		t.Fatalf("expected counters (1,1), got (%d,%d)", removed, failed)
	}
}

func TestRemoveIgnoresPlaceholderPaths(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Remove("/img/elementos/ferro.png")
	removed, failed := store.Counters()
	if removed != 0 || failed != 0 {
		t.Fatalf("placeholder removal should be a no-op, got (%d,%d)", removed, failed)
	}
}
