package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"greenroom/internal/logging"
	"greenroom/internal/queue"
	"greenroom/internal/services"
)

// Options tunes a download pool.
type Options struct {
	Workers    int
	MaxRetries int

	// Store, when set, tracks every file's lifecycle in the job ledger.
	Store *queue.Store

	// ShowProgress renders a terminal progress bar across the batch.
	ShowProgress bool

	Logger *slog.Logger
}

// Failure records one file that could not be downloaded.
type Failure struct {
	Name string
	Err  error
}

// Stats summarizes a pool run. Re-running the pool retries only the
// failed files because verified downloads are skipped.
type Stats struct {
	Downloaded int
	Skipped    int
	Failed     int
	Failures   []Failure
}

// Pool downloads a manifest of files concurrently with per-file retries.
type Pool struct {
	fetcher    Fetcher
	workers    int
	maxRetries int
	store      *queue.Store
	progress   bool
	logger     *slog.Logger

	// sleep is replaceable so retry timing is testable.
	sleep func(time.Duration)
}

// NewPool builds a download pool over fetcher.
func NewPool(fetcher Fetcher, opts Options) *Pool {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 5
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pool{
		fetcher:    fetcher,
		workers:    workers,
		maxRetries: maxRetries,
		store:      opts.Store,
		progress:   opts.ShowProgress,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Run downloads every manifest file into destDir and reports the outcome.
// Files already present with the expected size and checksum are skipped.
func (p *Pool) Run(ctx context.Context, files []FileInfo, destDir string) (*Stats, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}

	var bar *progressbar.ProgressBar
	if p.progress {
		bar = progressbar.Default(int64(len(files)), "downloading")
	}

	jobs := make(chan FileInfo)
	var (
		mu    sync.Mutex
		stats Stats
		wg    sync.WaitGroup
	)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				outcome, err := p.process(ctx, file, destDir)

				mu.Lock()
				switch {
				case err != nil:
					stats.Failed++
					stats.Failures = append(stats.Failures, Failure{Name: file.Name, Err: err})
				case outcome == outcomeSkipped:
					stats.Skipped++
				default:
					stats.Downloaded++
				}
				mu.Unlock()

				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(stats.Failures, func(i, j int) bool {
		return stats.Failures[i].Name < stats.Failures[j].Name
	})
	p.logger.Info("download batch finished",
		logging.Int("downloaded", stats.Downloaded),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed))
	return &stats, nil
}

type outcome int

const (
	outcomeDownloaded outcome = iota
	outcomeSkipped
)

func (p *Pool) process(ctx context.Context, file FileInfo, destDir string) (outcome, error) {
	dest := filepath.Join(destDir, file.Name)

	if verifyFile(dest, file.Size, file.MD5) == nil {
		p.logger.Debug("already downloaded", logging.String("file", file.Name))
		p.recordStatus(ctx, file, queue.StatusDownloaded, "")
		return outcomeSkipped, nil
	}
	// A present but unverifiable file is a truncated or corrupted
	// leftover; remove it and download again.
	_ = os.Remove(dest)

	p.recordStatus(ctx, file, queue.StatusDownloading, "")

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		lastErr = p.download(ctx, file, dest)
		if lastErr == nil {
			p.recordStatus(ctx, file, queue.StatusDownloaded, "")
			p.logger.Info("downloaded", logging.String("file", file.Name))
			return outcomeDownloaded, nil
		}
		if !services.Retryable(lastErr) {
			break
		}
		if attempt < p.maxRetries-1 {
			delay := backoffDelay(lastErr, attempt)
			p.logger.Warn("retrying download",
				logging.String("file", file.Name),
				logging.Int("attempt", attempt+1),
				logging.Duration("delay", delay),
				logging.Error(lastErr))
			p.sleep(delay)
		}
	}

	p.recordStatus(ctx, file, queue.StatusFailed, lastErr.Error())
	return 0, lastErr
}

// download fetches into a temp file and renames only after verification,
// so a crash or failed attempt never leaves a plausible-looking file.
func (p *Pool) download(ctx context.Context, file FileInfo, dest string) error {
	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(tmp), err)
	}

	fetchErr := p.fetcher.Fetch(ctx, file, out)
	closeErr := out.Close()
	if fetchErr == nil {
		fetchErr = closeErr
	}
	if fetchErr == nil {
		fetchErr = verifyFile(tmp, file.Size, file.MD5)
	}
	if fetchErr != nil {
		_ = os.Remove(tmp)
		return fetchErr
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize %s: %w", file.Name, err)
	}
	return nil
}

func (p *Pool) recordStatus(ctx context.Context, file FileInfo, status queue.Status, errorMessage string) {
	if p.store == nil {
		return
	}
	item, err := p.store.NewFile(ctx, file.Name, file.Size)
	if err != nil {
		p.logger.Warn("queue update failed", logging.String("file", file.Name), logging.Error(err))
		return
	}
	if err := p.store.SetStatus(ctx, item.ID, status, errorMessage); err != nil {
		p.logger.Warn("queue update failed", logging.String("file", file.Name), logging.Error(err))
	}
}

// verifyFile checks that a file exists with the expected size and, when a
// checksum is known, the expected MD5.
func verifyFile(path string, size int64, md5sum string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", filepath.Base(path))
	}
	if size > 0 && info.Size() != size {
		return fmt.Errorf("%s is %d bytes, expected %d", filepath.Base(path), info.Size(), size)
	}
	if md5sum == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return fmt.Errorf("hash %s: %w", filepath.Base(path), err)
	}
	if got := hex.EncodeToString(hash.Sum(nil)); got != md5sum {
		return fmt.Errorf("%s checksum mismatch", filepath.Base(path))
	}
	return nil
}

// backoffDelay computes the exponential backoff with jitter for a failed
// attempt. Rate limits back off harder than ordinary transient errors.
func backoffDelay(err error, attempt int) time.Duration {
	var base float64
	if services.IsRateLimited(err) {
		base = math.Min(10*math.Pow(2, float64(attempt)), 60)
	} else {
		base = math.Min(math.Pow(2, float64(attempt)), 30)
	}
	jitter := base * (0.5 + rand.Float64()*0.5)
	return time.Duration(jitter * float64(time.Second))
}
