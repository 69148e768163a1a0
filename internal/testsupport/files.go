package testsupport

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

// WriteVideoFile creates a stand-in recording of the given size and returns
// its md5 hex digest for checksum assertions. A size <= 0 writes one byte.
func WriteVideoFile(t testing.TB, path string, size int64) string {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	payload := bytes.Repeat([]byte{0x42}, int(size))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	sum := md5.Sum(payload)
	return hex.EncodeToString(sum[:])
}
