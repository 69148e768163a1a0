package queue_test

import (
	"context"
	"testing"

	"greenroom/internal/queue"
	"greenroom/internal/testsupport"
)

func newStore(t *testing.T) *queue.Store {
	t.Helper()
	return testsupport.MustOpenStore(t, testsupport.NewConfig(t))
}

func TestNewFileAssignsJobID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	item, err := store.NewFile(ctx, "Robertson - 1000 - Smith.mp4", 2048)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if item.JobID == "" {
		t.Error("item has no job id")
	}
	if item.Status != queue.StatusPending {
		t.Errorf("Status = %q, want %q", item.Status, queue.StatusPending)
	}
	if item.Size != 2048 {
		t.Errorf("Size = %d, want 2048", item.Size)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestNewFileIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.NewFile(ctx, "talk.mp4", 100)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	second, err := store.NewFile(ctx, "talk.mp4", 200)
	if err != nil {
		t.Fatalf("NewFile again: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second enqueue created a new item: %d != %d", second.ID, first.ID)
	}
	if second.Size != 100 {
		t.Errorf("Size = %d, want existing item unchanged", second.Size)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	item, err := store.NewFile(ctx, "talk.mp4", 100)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	item.Status = queue.StatusRenamed
	item.NewName = "Title — Speaker (PyBay 2025).mp4"
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusRenamed {
		t.Errorf("Status = %q, want %q", got.Status, queue.StatusRenamed)
	}
	if got.NewName != item.NewName {
		t.Errorf("NewName = %q, want %q", got.NewName, item.NewName)
	}
}

func TestSetStatusRecordsError(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	item, err := store.NewFile(ctx, "talk.mp4", 100)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := store.SetStatus(ctx, item.ID, queue.StatusFailed, "download timed out"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	got, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusFailed {
		t.Errorf("Status = %q, want %q", got.Status, queue.StatusFailed)
	}
	if got.ErrorMessage != "download timed out" {
		t.Errorf("ErrorMessage = %q", got.ErrorMessage)
	}
	if !got.NeedsAttention() {
		t.Error("failed item should need attention")
	}
}

func TestListFiltersByStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	a, _ := store.NewFile(ctx, "a.mp4", 1)
	b, _ := store.NewFile(ctx, "b.mp4", 2)
	if _, err := store.NewFile(ctx, "c.mp4", 3); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := store.SetStatus(ctx, a.ID, queue.StatusRenamed, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := store.SetStatus(ctx, b.ID, queue.StatusReview, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d items, want 3", len(all))
	}

	flagged, err := store.List(ctx, queue.StatusReview, queue.StatusFailed)
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(flagged) != 1 || flagged[0].Filename != "b.mp4" {
		t.Errorf("flagged = %+v, want only b.mp4", flagged)
	}
}

func TestClearAndSummarize(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	a, _ := store.NewFile(ctx, "a.mp4", 1)
	if _, err := store.NewFile(ctx, "b.mp4", 2); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := store.SetStatus(ctx, a.ID, queue.StatusRenamed, ""); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	summary, err := store.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Total != 2 || summary.Renamed != 1 || summary.Pending != 1 {
		t.Errorf("Summary = %+v", summary)
	}

	deleted, err := store.Clear(ctx, queue.StatusRenamed)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Filename != "b.mp4" {
		t.Errorf("remaining = %+v, want only b.mp4", remaining)
	}

	deleted, err = store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := queue.ParseStatus("  Renamed "); !ok || status != queue.StatusRenamed {
		t.Errorf("ParseStatus = %q, %v", status, ok)
	}
	if _, ok := queue.ParseStatus("ripping"); ok {
		t.Error("unknown status accepted")
	}
}
