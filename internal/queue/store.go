package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"greenroom/internal/config"
)

const itemColumns = `id, job_id, filename, new_name, size, status, error_message, created_at, updated_at`

// Store manages queue persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the queue database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "queue.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewFile enqueues a video file in the pending state. Enqueueing a filename
// that is already tracked returns the existing item unchanged.
func (s *Store) NewFile(ctx context.Context, filename string, size int64) (*Item, error) {
	if existing, err := s.GetByFilename(ctx, filename); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO queue_items (
            job_id, filename, size, status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		filename,
		size,
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a queue item by identifier. A missing item returns nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM queue_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByFilename fetches a queue item by its original filename.
func (s *Store) GetByFilename(ctx context.Context, filename string) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM queue_items WHERE filename = ?`, filename)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item by filename: %w", err)
	}
	return item, nil
}

// Update persists the item's mutable fields and refreshes its update time.
func (s *Store) Update(ctx context.Context, item *Item) error {
	item.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE queue_items
            SET new_name = ?, size = ?, status = ?, error_message = ?, updated_at = ?
          WHERE id = ?`,
		nullableString(item.NewName),
		item.Size,
		item.Status,
		nullableString(item.ErrorMessage),
		item.UpdatedAt.Format(time.RFC3339Nano),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}
	return nil
}

// SetStatus transitions an item and records an optional error message.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status, errorMessage string) error {
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE queue_items SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		status,
		nullableString(errorMessage),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("set status for item %d: %w", id, err)
	}
	return nil
}

// List returns items filtered by status, or every item when no statuses are
// given, ordered by insertion.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM queue_items`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Clear deletes items in the given statuses, or every item when no statuses
// are given. It returns the number of deleted rows.
func (s *Store) Clear(ctx context.Context, statuses ...Status) (int64, error) {
	query := `DELETE FROM queue_items`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear items: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

// Summarize aggregates item counts per lifecycle state.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM queue_items GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize queue: %w", err)
	}
	defer rows.Close()

	var summary Summary
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Summary{}, fmt.Errorf("scan summary row: %w", err)
		}
		summary.Total += count
		switch status {
		case StatusPending:
			summary.Pending += count
		case StatusDownloading, StatusDownloaded:
			summary.Processing += count
		case StatusReview:
			summary.Review += count
		case StatusFailed:
			summary.Failed += count
		case StatusRenamed:
			summary.Renamed += count
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate summary: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(scanner rowScanner) (*Item, error) {
	var (
		item         Item
		newName      sql.NullString
		errorMessage sql.NullString
		createdAt    string
		updatedAt    string
	)
	err := scanner.Scan(
		&item.ID,
		&item.JobID,
		&item.Filename,
		&newName,
		&item.Size,
		&item.Status,
		&errorMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.NewName = newName.String
	item.ErrorMessage = errorMessage.String
	if item.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
