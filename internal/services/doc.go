// Package services defines the shared error taxonomy and context plumbing used
// by pipeline components. Errors wrap one of the sentinel markers so callers
// can classify failures (permanent versus retryable) without string matching.
package services
