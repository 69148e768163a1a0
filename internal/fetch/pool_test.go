package fetch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"greenroom/internal/services"
	"greenroom/internal/testsupport"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	payload []byte
	scripts map[string][]error
	calls   map[string]int
}

func newScriptedFetcher(payload string) *scriptedFetcher {
	return &scriptedFetcher{
		payload: []byte(payload),
		scripts: make(map[string][]error),
		calls:   make(map[string]int),
	}
}

func (f *scriptedFetcher) failWith(name string, errs ...error) {
	f.scripts[name] = errs
}

func (f *scriptedFetcher) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *scriptedFetcher) Fetch(_ context.Context, file FileInfo, dst io.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[file.Name]++
	if errs := f.scripts[file.Name]; len(errs) > 0 {
		err := errs[0]
		f.scripts[file.Name] = errs[1:]
		return err
	}
	_, err := dst.Write(f.payload)
	return err
}

func newTestPool(fetcher Fetcher) (*Pool, *[]time.Duration) {
	pool := NewPool(fetcher, Options{Workers: 2, MaxRetries: 5})
	var delays []time.Duration
	pool.sleep = func(d time.Duration) { delays = append(delays, d) }
	return pool, &delays
}

func testFiles() []FileInfo {
	return []FileInfo{
		{ID: "f1", Name: "Robertson - 1000 - Smith.mp4", Size: 5},
		{ID: "f2", Name: "Bayview - 1130 - Jones.mp4", Size: 5},
	}
}

func TestPoolDownloadsAndSkips(t *testing.T) {
	dir := t.TempDir()
	fetcher := newScriptedFetcher("hello")
	pool, _ := newTestPool(fetcher)

	stats, err := pool.Run(context.Background(), testFiles(), dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Downloaded != 2 || stats.Skipped != 0 || stats.Failed != 0 {
		t.Fatalf("stats = %+v, want 2 downloads", stats)
	}

	for _, file := range testFiles() {
		data, err := os.ReadFile(filepath.Join(dir, file.Name))
		if err != nil {
			t.Fatalf("read %s: %v", file.Name, err)
		}
		if string(data) != "hello" {
			t.Errorf("%s = %q, want payload", file.Name, data)
		}
	}

	// Verified files are skipped on a re-run.
	stats, err = pool.Run(context.Background(), testFiles(), dir)
	if err != nil {
		t.Fatalf("Run again: %v", err)
	}
	if stats.Downloaded != 0 || stats.Skipped != 2 {
		t.Errorf("stats = %+v, want 2 skips", stats)
	}
}

func TestPoolRetriesTransientErrors(t *testing.T) {
	dir := t.TempDir()
	fetcher := newScriptedFetcher("hello")
	name := testFiles()[0].Name
	fetcher.failWith(name,
		services.Wrap(services.ErrTransient, "fetch", "request", "HTTP 503", nil),
		services.Wrap(services.ErrTransient, "fetch", "request", "HTTP 502", nil),
	)
	pool, delays := newTestPool(fetcher)

	stats, err := pool.Run(context.Background(), testFiles()[:1], dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Downloaded != 1 || stats.Failed != 0 {
		t.Fatalf("stats = %+v, want recovery after retries", stats)
	}
	if fetcher.callCount(name) != 3 {
		t.Errorf("fetch calls = %d, want 3", fetcher.callCount(name))
	}
	if len(*delays) != 2 {
		t.Fatalf("got %d backoff sleeps, want 2", len(*delays))
	}
	if d := (*delays)[0]; d < 500*time.Millisecond || d > time.Second {
		t.Errorf("first delay = %v, want within [0.5s, 1s]", d)
	}
	if d := (*delays)[1]; d < time.Second || d > 2*time.Second {
		t.Errorf("second delay = %v, want within [1s, 2s]", d)
	}
}

func TestPoolDoesNotRetryPermanentErrors(t *testing.T) {
	dir := t.TempDir()
	fetcher := newScriptedFetcher("hello")
	name := testFiles()[0].Name
	fetcher.failWith(name,
		services.Wrap(services.ErrNotFound, "fetch", "request", "file not found", nil),
	)
	pool, delays := newTestPool(fetcher)

	stats, err := pool.Run(context.Background(), testFiles()[:1], dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 {
		t.Fatalf("stats = %+v, want 1 failure", stats)
	}
	if !errors.Is(stats.Failures[0].Err, services.ErrNotFound) {
		t.Errorf("failure = %v, want not-found", stats.Failures[0].Err)
	}
	if fetcher.callCount(name) != 1 {
		t.Errorf("fetch calls = %d, want no retry", fetcher.callCount(name))
	}
	if len(*delays) != 0 {
		t.Errorf("slept %v, want no backoff", *delays)
	}
}

func TestPoolReplacesCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := newScriptedFetcher("hello")
	file := testFiles()[0]

	// A truncated leftover from an interrupted run.
	if err := os.WriteFile(filepath.Join(dir, file.Name), []byte("he"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	pool, _ := newTestPool(fetcher)
	stats, err := pool.Run(context.Background(), []FileInfo{file}, dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Downloaded != 1 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v, want re-download", stats)
	}
	data, err := os.ReadFile(filepath.Join(dir, file.Name))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want replaced payload", data)
	}
}

func TestPoolVerifiesChecksums(t *testing.T) {
	dir := t.TempDir()
	file := testFiles()[0]

	// WriteVideoFile fills with repeated 'B' bytes; the fetcher serves the
	// same payload so a correct download verifies against the digest.
	sum := testsupport.WriteVideoFile(t, filepath.Join(dir, file.Name), file.Size)
	file.MD5 = sum
	fetcher := newScriptedFetcher("BBBBB")

	pool, _ := newTestPool(fetcher)
	stats, err := pool.Run(context.Background(), []FileInfo{file}, dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Skipped != 1 || stats.Downloaded != 0 {
		t.Fatalf("stats = %+v, want checksum-verified skip", stats)
	}
	if fetcher.callCount(file.Name) != 0 {
		t.Errorf("fetch calls = %d, want none", fetcher.callCount(file.Name))
	}

	// Same size but wrong content: the checksum catches it and the file is
	// replaced.
	if err := os.WriteFile(filepath.Join(dir, file.Name), []byte("wrong"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}
	stats, err = pool.Run(context.Background(), []FileInfo{file}, dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Downloaded != 1 {
		t.Fatalf("stats = %+v, want checksum-driven re-download", stats)
	}
	if fetcher.callCount(file.Name) != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.callCount(file.Name))
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	transient := services.Wrap(services.ErrTransient, "fetch", "request", "HTTP 503", nil)
	limited := services.Wrap(services.ErrRateLimited, "fetch", "request", "rate limit exceeded", nil)

	for attempt := 0; attempt < 10; attempt++ {
		if d := backoffDelay(transient, attempt); d > 30*time.Second {
			t.Errorf("transient delay at attempt %d = %v, want <= 30s", attempt, d)
		}
		if d := backoffDelay(limited, attempt); d > 60*time.Second {
			t.Errorf("rate-limit delay at attempt %d = %v, want <= 60s", attempt, d)
		}
	}

	if d := backoffDelay(limited, 0); d < 5*time.Second || d > 10*time.Second {
		t.Errorf("rate-limit first delay = %v, want within [5s, 10s]", d)
	}
}
