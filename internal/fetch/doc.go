// Package fetch downloads batches of conference videos from remote
// storage.
//
// A worker pool drives per-file downloads with exponential-backoff
// retries, checksum verification, and resumable batches: files that
// already exist locally and verify are skipped, so re-running after a
// partial failure retries only what is missing.
package fetch
