package testsupport

import (
	"context"
	"testing"

	"greenroom/internal/config"
	"greenroom/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewFile enqueues a file item for tests using the provided store.
func NewFile(t testing.TB, store *queue.Store, filename string, size int64) *queue.Item {
	t.Helper()

	item, err := store.NewFile(context.Background(), filename, size)
	if err != nil {
		t.Fatalf("store.NewFile: %v", err)
	}
	return item
}
