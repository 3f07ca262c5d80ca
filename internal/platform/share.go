package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/logging"
)

// SystemSharer invokes the operating system share action for a local file.
// On Android this is the ACTION_SEND chooser; desktop platforms have no share
// sheet, so the file is opened with its default application instead.
type SystemSharer struct {
	logger *zap.Logger
}

// NewSystemSharer creates a sharer for the current platform
func NewSystemSharer(logger *zap.Logger) *SystemSharer {
	return &SystemSharer{logger: logging.OrNop(logger)}
}

// Share hands the file at filePath to the platform share action
func (s *SystemSharer) Share(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	if !IsAndroid() {
		return OpenFileWithDefaultApp(filePath)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := NotifyMediaScanner(absPath); err != nil {
		// Not fatal: the chooser still receives the file URI
		s.logger.Warn("media scanner notification failed", zap.String("path", absPath), zap.Error(err))
	}

	return runCommand(AndroidAM, "start",
		"-a", "android.intent.action.SEND",
		"-t", MimeTypeForFile(absPath),
		"--eu", "android.intent.extra.STREAM", "file://"+absPath,
		"--grant-read-uri-permission")
}
