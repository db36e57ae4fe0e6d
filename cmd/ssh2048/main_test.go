package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecuteReportsErrorsOnStderr(t *testing.T) {
	var stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.lua")

	code := execute(context.Background(), newCommand(), []string{"ssh2048", "--strategy", missing}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "error ") || !strings.Contains(stderr.String(), "missing.lua") {
		t.Errorf("unexpected stderr output %q", stderr.String())
	}
}

func TestSetupLoggingWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	closeLog, err := setupLogging(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	closeLog()

	if _, err := setupLogging(filepath.Join(t.TempDir(), "no", "such", "dir.log"), false); err == nil {
		t.Error("expected an error for an unwritable log path")
	}
}
