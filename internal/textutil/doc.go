// Package textutil provides text processing utilities shared across the
// renaming and attribution pipelines.
//
// The primary use cases are:
//   - Sanitizing generated publication filenames for safe filesystem use
//   - Folding dash variants so title comparisons tolerate punctuation drift
package textutil
