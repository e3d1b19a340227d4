package testutil

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireBinary skips the test when the named executable is not on PATH.
// Pipeline tests spawn real system binaries, so this keeps them honest on
// minimal environments instead of failing.
func RequireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("binary %q not found on PATH: %v", name, err)
	}
}

// WriteScript writes body into a temporary executable shell script and
// returns its path. The file lives in t.TempDir and is removed when the
// test ends.
func WriteScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

// ReadAll drains r and fails the test on error.
func ReadAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}
	return data
}
