package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoadMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "savedata.bin"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected missing blob")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "savedata.bin")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	blob := []byte{0x00, 0x01, 0xfe, 0xff}
	if err := store.Save(blob); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected blob to exist")
	}
	if !bytes.Equal(blob, got) {
		t.Fatalf("blob mismatch: want %x got %x", blob, got)
	}
}

func TestStoreSaveTightensPermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "savedata.bin")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save([]byte("secret")); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "savedata.bin"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save([]byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the blob in %s, got %d entries", dir, len(entries))
	}
}

func TestStoreRejectsEmptyPath(t *testing.T) {
	if _, err := NewStore("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
