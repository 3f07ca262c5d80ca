package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir", "nested")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetDocumentsDir(t *testing.T) {
	docsDir, err := GetDocumentsDir()
	if err != nil {
		t.Fatalf("Failed to get documents directory: %v", err)
	}

	if docsDir == "" {
		t.Fatal("Documents directory is empty")
	}

	if filepath.Base(docsDir) != AppDirName {
		t.Errorf("Expected directory to end with %q, got: %s", AppDirName, docsDir)
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"simple", "https://cdn.example.com/files/anger-thermometer.pdf", "anger-thermometer.pdf"},
		{"query stripped", "https://cdn.example.com/files/turtle.png?token=abc&x=1", "turtle.png"},
		{"fragment stripped", "https://cdn.example.com/files/breathe.mp4#t=10", "breathe.mp4"},
		{"escaped", "https://cdn.example.com/files/calm%20corner.pdf", "calm corner.pdf"},
		{"escaped separator", "https://cdn.example.com/files/a%2Fb.pdf", "a_b.pdf"},
		{"trailing slash", "https://cdn.example.com/files/worksheet/", "worksheet"},
		{"host only", "https://cdn.example.com", DefaultFileName},
		{"host with slash", "https://cdn.example.com/", DefaultFileName},
		{"empty", "", DefaultFileName},
		{"relative", "files/poster.jpg", "poster.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilenameFromURL(tt.url); got != tt.expected {
				t.Errorf("FilenameFromURL(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestMimeTypeForFile(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/docs/sheet.pdf", "application/pdf"},
		{"/docs/poster.PNG", "image/png"},
		{"/docs/no-extension", "*/*"},
	}

	for _, tt := range tests {
		if got := MimeTypeForFile(tt.path); got != tt.expected {
			t.Errorf("MimeTypeForFile(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestOpenFileWithDefaultApp_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.pdf")

	err := OpenFileWithDefaultApp(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileWithDefaultApp_RunsCommand(t *testing.T) {
	var calls [][]string
	orig := runCommand
	runCommand = func(name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		return nil
	}
	defer func() { runCommand = orig }()

	filePath := filepath.Join(t.TempDir(), "worksheet.pdf")
	if err := os.WriteFile(filePath, []byte("%PDF"), DefaultFilePermissions); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	err := OpenFileWithDefaultApp(filePath)
	if err != nil && !strings.Contains(err.Error(), "unsupported operating system") {
		t.Fatalf("unexpected error: %v", err)
	}
	if err == nil && len(calls) != 1 {
		t.Fatalf("expected one command, got %d", len(calls))
	}
	if len(calls) == 1 && !strings.Contains(strings.Join(calls[0], " "), "worksheet.pdf") {
		t.Errorf("command should reference the file, got %v", calls[0])
	}
}
