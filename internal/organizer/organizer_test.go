package organizer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"greenroom/internal/organizer"
	"greenroom/internal/queue"
	"greenroom/internal/rename"
	"greenroom/internal/testsupport"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newOrganizer(t *testing.T) (*organizer.Organizer, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return organizer.New(cfg, store, nil), store
}

func TestListVideoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.mp4", "a.MOV", "notes.txt", "c.webm")
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := organizer.ListVideoFiles(dir)
	if err != nil {
		t.Fatalf("ListVideoFiles: %v", err)
	}
	want := []string{"a.MOV", "b.mp4", "c.webm"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestApplyRenamesAndRecords(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Robertson - 1000 - Smith.mp4", "extra.mp4")

	org, store := newOrganizer(t)
	plan := &rename.Plan{
		Renames: map[string]string{
			"Robertson - 1000 - Smith.mp4": "Great Talk — Jane Smith (PyBay 2025).mp4",
			"extra.mp4":                    rename.ReviewPrefix + "extra.mp4",
		},
	}

	result, err := org.Apply(context.Background(), dir, plan, false)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 2 || len(result.Skipped) != 0 {
		t.Fatalf("result = %+v, want 2 renames", result)
	}

	if _, err := os.Stat(filepath.Join(dir, "Great Talk — Jane Smith (PyBay 2025).mp4")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Robertson - 1000 - Smith.mp4")); !os.IsNotExist(err) {
		t.Errorf("original file still present: %v", err)
	}

	item, err := store.GetByFilename(context.Background(), "Robertson - 1000 - Smith.mp4")
	if err != nil || item == nil {
		t.Fatalf("ledger item missing: %v", err)
	}
	if item.Status != queue.StatusRenamed {
		t.Errorf("Status = %q, want %q", item.Status, queue.StatusRenamed)
	}

	flagged, err := store.GetByFilename(context.Background(), "extra.mp4")
	if err != nil || flagged == nil {
		t.Fatalf("flagged item missing: %v", err)
	}
	if flagged.Status != queue.StatusReview {
		t.Errorf("Status = %q, want %q", flagged.Status, queue.StatusReview)
	}
}

func TestApplyNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "source.mp4", "taken.mp4")

	org, _ := newOrganizer(t)
	plan := &rename.Plan{
		Renames: map[string]string{"source.mp4": "taken.mp4"},
	}

	result, err := org.Apply(context.Background(), dir, plan, false)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Skipped) != 1 || len(result.Renamed) != 0 {
		t.Fatalf("result = %+v, want skip", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "source.mp4")); err != nil {
		t.Errorf("source should be untouched: %v", err)
	}
}

func TestApplyDryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "source.mp4")

	org, store := newOrganizer(t)
	plan := &rename.Plan{
		Renames: map[string]string{"source.mp4": "new.mp4"},
	}

	result, err := org.Apply(context.Background(), dir, plan, true)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 1 {
		t.Fatalf("result = %+v, want 1 planned rename", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "source.mp4")); err != nil {
		t.Errorf("source renamed during dry run: %v", err)
	}
	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("ledger written during dry run: %+v", items)
	}
}

func TestRepairRenamesLegacyNames(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"Might Django Be The Best? — Michael Ryabushkin (2025).mp4",
		"Modern Talk — Jane Doe (PyBay 2025).mp4",
	)

	org, _ := newOrganizer(t)
	result, err := org.Repair(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if len(result.Renamed) != 1 {
		t.Fatalf("result = %+v, want 1 repair", result)
	}
	want := "Might Django Be The Best? — Michael Ryabushkin (PyBay 2025).mp4"
	if result.Renamed[0].NewName != want {
		t.Errorf("NewName = %q, want %q", result.Renamed[0].NewName, want)
	}
	if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
		t.Errorf("repaired file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Modern Talk — Jane Doe (PyBay 2025).mp4")); err != nil {
		t.Errorf("current-form file should be untouched: %v", err)
	}
}
