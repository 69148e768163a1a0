// Package queue persists the pipeline's job ledger in SQLite.
//
// Every video file entering the pipeline gets one queue item that tracks
// its download, rename, and review state across runs, so interrupted
// batches resume instead of repeating work.
package queue
