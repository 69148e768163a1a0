package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"greenroom/internal/config"
	"greenroom/internal/logging"
	"greenroom/internal/queue"
	"greenroom/internal/rename"
	"greenroom/internal/services"
)

// videoExtensions lists the file types treated as talk recordings.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// lockFileName is created in the video directory while a rename batch
// runs, so two invocations cannot interleave renames.
const lockFileName = ".greenroom.lock"

// RenameRecord is one applied or skipped rename.
type RenameRecord struct {
	OldName string
	NewName string
}

// ApplyResult reports what a rename batch did on disk.
type ApplyResult struct {
	Renamed []RenameRecord

	// Skipped lists renames whose target already existed. Existing files
	// are never overwritten; these need operator attention.
	Skipped []RenameRecord
}

// Organizer applies rename plans to the video directory and keeps the job
// ledger in sync.
type Organizer struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger
}

// New constructs an organizer. The store may be nil, in which case no
// ledger updates happen.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{
		cfg:    cfg,
		store:  store,
		logger: logger.With(logging.String(logging.FieldComponent, "organizer")),
	}
}

// ListVideoFiles returns the video filenames in dir, sorted by name.
func ListVideoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read video directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; ok {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Apply performs every rename in the plan inside dir. Files whose target
// name is already taken are skipped and reported, never overwritten. With
// dryRun set nothing touches the disk and the result shows what would
// happen.
func (o *Organizer) Apply(ctx context.Context, dir string, plan *rename.Plan, dryRun bool) (*ApplyResult, error) {
	logger := logging.WithContext(ctx, o.logger)

	if !dryRun {
		unlock, err := o.acquireLock(dir)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	oldNames := make([]string, 0, len(plan.Renames))
	for oldName := range plan.Renames {
		oldNames = append(oldNames, oldName)
	}
	sort.Strings(oldNames)

	result := &ApplyResult{}
	for _, oldName := range oldNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		newName := plan.Renames[oldName]
		record := RenameRecord{OldName: oldName, NewName: newName}

		target := filepath.Join(dir, newName)
		if _, err := os.Stat(target); err == nil {
			logger.Warn("target name already taken",
				logging.String("file", oldName),
				logging.String("target", newName))
			result.Skipped = append(result.Skipped, record)
			continue
		}

		if !dryRun {
			if err := os.Rename(filepath.Join(dir, oldName), target); err != nil {
				return nil, fmt.Errorf("rename %s: %w", oldName, err)
			}
			o.recordRename(ctx, record)
		}
		logger.Info("renamed",
			logging.String("file", oldName),
			logging.String("target", newName),
			logging.Bool("dry_run", dryRun))
		result.Renamed = append(result.Renamed, record)
	}
	return result, nil
}

// Repair renames already-published files from the legacy bare-year suffix
// to the current one. Files already in the current form are untouched.
func (o *Organizer) Repair(ctx context.Context, dir string, dryRun bool) (*ApplyResult, error) {
	logger := logging.WithContext(ctx, o.logger)

	files, err := ListVideoFiles(dir)
	if err != nil {
		return nil, err
	}

	if !dryRun {
		unlock, err := o.acquireLock(dir)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	result := &ApplyResult{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repaired, changed := rename.RepairPublicationName(name)
		if !changed {
			continue
		}
		record := RenameRecord{OldName: name, NewName: repaired}

		target := filepath.Join(dir, repaired)
		if _, err := os.Stat(target); err == nil {
			logger.Warn("repair target already taken",
				logging.String("file", name),
				logging.String("target", repaired))
			result.Skipped = append(result.Skipped, record)
			continue
		}

		if !dryRun {
			if err := os.Rename(filepath.Join(dir, name), target); err != nil {
				return nil, fmt.Errorf("rename %s: %w", name, err)
			}
		}
		logger.Info("repaired publication name",
			logging.String("file", name),
			logging.String("target", repaired),
			logging.Bool("dry_run", dryRun))
		result.Renamed = append(result.Renamed, record)
	}
	return result, nil
}

func (o *Organizer) acquireLock(dir string) (func(), error) {
	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire directory lock: %w", err)
	}
	if !locked {
		return nil, services.Wrap(
			services.ErrTransient,
			"organizer",
			"lock",
			fmt.Sprintf("another run is renaming files in %s", dir),
			nil,
		)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("release directory lock failed", logging.Error(err))
		}
	}, nil
}

func (o *Organizer) recordRename(ctx context.Context, record RenameRecord) {
	if o.store == nil {
		return
	}
	item, err := o.store.NewFile(ctx, record.OldName, 0)
	if err != nil {
		o.logger.Warn("queue update failed", logging.String("file", record.OldName), logging.Error(err))
		return
	}
	item.NewName = record.NewName
	if strings.HasPrefix(record.NewName, rename.ReviewPrefix) {
		item.Status = queue.StatusReview
	} else {
		item.Status = queue.StatusRenamed
	}
	if err := o.store.Update(ctx, item); err != nil {
		o.logger.Warn("queue update failed", logging.String("file", record.OldName), logging.Error(err))
	}
}
