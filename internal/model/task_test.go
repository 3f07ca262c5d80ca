package model

import (
	"testing"
	"time"
)

func TestDownloadTask_GetSizeString(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, test := range tests {
		task := &DownloadTask{FileSize: test.size}
		result := task.GetSizeString()
		if result != test.expected {
			t.Errorf("GetSizeString() with FileSize=%d = %s, expected %s", test.size, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		fileName   string
		outputPath string
		url        string
		expected   string
	}{
		{"breathing.pdf", "", "https://cdn.example.com/breathing.pdf", "breathing.pdf"},
		{"", "/docs/calm/volcano.mp4", "https://cdn.example.com/volcano.mp4", "volcano.mp4"},
		{"", `C:\docs\turtle.png`, "https://cdn.example.com/turtle.png", "turtle.png"},
		{"", "", "https://cdn.example.com/x", "https://cdn.example.com/x"},
	}

	for _, test := range tests {
		task := &DownloadTask{
			FileName:   test.fileName,
			OutputPath: test.outputPath,
			URL:        test.url,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with fileName='%s', outputPath='%s' = '%s', expected '%s'",
				test.fileName, test.outputPath, result, test.expected)
		}
	}
}

func TestDownloadTask_Creation(t *testing.T) {
	now := time.Now()
	task := &DownloadTask{
		ID:        "task-123",
		URL:       "https://cdn.example.com/calm.pdf",
		Status:    TaskStatusPending,
		StartedAt: now,
	}

	if task.ID != "task-123" {
		t.Errorf("Expected ID to be 'task-123', got '%s'", task.ID)
	}

	if task.Status != TaskStatusPending {
		t.Errorf("Expected status to be TaskStatusPending, got %s", task.Status)
	}

	if !task.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, task.StartedAt)
	}
}
