// Package organizer applies rename plans to the video directory.
//
// It is the only part of the pipeline that touches files on disk:
// matching and name generation stay pure, and the organizer carries out
// their plan under a directory lock, skipping (never overwriting)
// occupied target names and recording each outcome in the job ledger.
package organizer
