package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestSystemSharer_EmptyPath(t *testing.T) {
	sharer := NewSystemSharer(zaptest.NewLogger(t))

	if err := sharer.Share(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSystemSharer_MissingFile(t *testing.T) {
	sharer := NewSystemSharer(nil)

	err := sharer.Share(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "file does not exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSystemSharer_InvokesPlatformCommand(t *testing.T) {
	var calls [][]string
	orig := runCommand
	runCommand = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	defer func() { runCommand = orig }()

	filePath := filepath.Join(t.TempDir(), "poster.png")
	if err := os.WriteFile(filePath, []byte("png"), DefaultFilePermissions); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	err := NewSystemSharer(zaptest.NewLogger(t)).Share(filePath)
	if err != nil && !strings.Contains(err.Error(), "unsupported operating system") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err != nil {
		return
	}
	if len(calls) == 0 {
		t.Fatal("expected a platform command to run")
	}
	last := strings.Join(calls[len(calls)-1], " ")
	if !strings.Contains(last, "poster.png") {
		t.Errorf("share command should reference the file, got %q", last)
	}
}
