package services

import "context"

type contextKey string

const (
	jobIDKey contextKey = "job_id"
	fileKey  contextKey = "file"
)

// WithJobID attaches a pipeline job identifier to the context.
func WithJobID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts a job identifier from the context.
func JobIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(jobIDKey).(string)
	return id, ok && id != ""
}

// WithFile attaches the video filename being processed to the context.
func WithFile(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, fileKey, name)
}

// FileFromContext extracts the video filename from the context.
func FileFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(fileKey).(string)
	return name, ok && name != ""
}
