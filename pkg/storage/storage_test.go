package storage

import (
	"path/filepath"
	"testing"

	"github.com/dtnitsch/tinyshot/models"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "login.snapshot.json")

	want := models.Snapshot{
		Title: "Login",
		Text:  "Welcome back.",
		Elements: []models.Element{
			{Type: models.TypeButton, Text: "Sign In", Sel: "button", Context: "login form"},
		},
	}
	if err := s.SaveSnapshot(path, want); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if !s.HasFile(path) {
		t.Fatal("saved snapshot not found on disk")
	}

	got, err := s.ReadSnapshot(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if got.Title != want.Title || got.Text != want.Text {
		t.Errorf("snapshot = %+v, want %+v", got, want)
	}
	if len(got.Elements) != 1 || got.Elements[0] != want.Elements[0] {
		t.Errorf("elements = %+v, want %+v", got.Elements, want.Elements)
	}
}

func TestGetFileStats(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "x.json")
	if err := s.SaveFile(path, []byte("{}")); err != nil {
		t.Fatalf("failed to save file: %v", err)
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if stats.SizeBytes != 2 {
		t.Errorf("size = %d, want 2", stats.SizeBytes)
	}
}

func TestReadSnapshotMissing(t *testing.T) {
	s := &Storage{}
	if _, err := s.ReadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
