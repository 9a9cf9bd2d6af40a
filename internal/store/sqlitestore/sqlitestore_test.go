package sqlitestore

import (
	"path/filepath"
	"testing"
)

func TestGetSetReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok, err := s.Get("tasks"); ok || err != nil {
		t.Fatalf("Get on fresh db: ok=%v err=%v", ok, err)
	}
	if err := s.Set("tasks", `[{"title":"A","done":false}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("tasks", `[{"title":"B","done":true}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get("tasks")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	want := `[{"title":"B","done":true}]`
	if got != want {
		t.Errorf("Get: got %q, want %q", got, want)
	}
}

func TestEmptyValue(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Set("tasks", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get("tasks")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "" {
		t.Errorf("Get: got (%q, %v), want (\"\", true)", got, ok)
	}
}
