package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/platform"
	"github.com/calmkids/calmkids/internal/render"
)

// Errors recorded on failed tasks
var (
	ErrEmptyURL         = errors.New("file URL is empty")
	ErrNoOpener         = errors.New("no URL opener configured")
	ErrNoSharer         = errors.New("no share action configured")
	ErrUnexpectedStatus = errors.New("unexpected download status")
)

// Service dispatches downloads
type Service struct {
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	docsDir    string
	platform   render.Platform
	httpClient *http.Client
	sharer     Sharer
	opener     URLOpener
	logger     *zap.Logger
	onUpdate   func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a dispatcher saving into docsDir for the current platform
func NewService(docsDir string, sharer Sharer, opener URLOpener, logger *zap.Logger) *Service {
	return &Service{
		tasks:      make(map[string]*model.DownloadTask),
		docsDir:    docsDir,
		platform:   render.CurrentPlatform(),
		httpClient: &http.Client{},
		sharer:     sharer,
		opener:     opener,
		logger:     logging.OrNop(logger).Named("download"),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetPlatform overrides the detected platform
func (s *Service) SetPlatform(p render.Platform) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.platform = p
}

// SetHTTPClient replaces the client used for native downloads
func (s *Service) SetHTTPClient(hc *http.Client) {
	if hc == nil {
		return
	}
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.httpClient = hc
}

// SetDocumentsDirectory sets the download directory
func (s *Service) SetDocumentsDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.docsDir = dir
}

// DocumentsDirectory returns the download directory
func (s *Service) DocumentsDirectory() string {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.docsDir
}

// Dispatch runs one download to completion and returns a snapshot of its task.
// Failures are logged and recorded on the task; they are never returned to the
// caller.
func (s *Service) Dispatch(ctx context.Context, fileURL string) *model.DownloadTask {
	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       fileURL,
		Status:    model.TaskStatusPending,
		FileName:  platform.FilenameFromURL(fileURL),
		StartedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	p := s.platform
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	logger := s.logger.With(zap.String("task_id", task.ID), zap.String("url", fileURL), zap.String("platform", string(p)))

	var err error
	if fileURL == "" {
		err = ErrEmptyURL
	} else if p == render.PlatformWeb {
		err = s.openInBrowser(task)
	} else {
		err = s.downloadAndShare(ctx, task, logger)
	}

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	}
	task.FinishedAt = time.Now()
	final := *task
	s.tasksMutex.Unlock()

	if err != nil {
		logger.Error("download failed", zap.Error(err))
	} else {
		logger.Info("download finished", zap.String("status", final.Status.String()), zap.String("path", final.OutputPath))
	}
	s.notifyUpdate(task)

	return &final
}

// openInBrowser hands the URL to the browser
func (s *Service) openInBrowser(task *model.DownloadTask) error {
	if s.opener == nil {
		return ErrNoOpener
	}
	u, err := url.Parse(task.URL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}
	if err := s.opener.OpenURL(u); err != nil {
		return fmt.Errorf("open URL: %w", err)
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusOpened
	s.tasksMutex.Unlock()
	return nil
}

// downloadAndShare saves the response body and shares it on a 200 response.
// The body is written whatever the status; partial files are left in place.
func (s *Service) downloadAndShare(ctx context.Context, task *model.DownloadTask, logger *zap.Logger) error {
	s.tasksMutex.Lock()
	dir := s.docsDir
	hc := s.httpClient
	task.Status = model.TaskStatusDownloading
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	if dir == "" {
		d, err := platform.GetDocumentsDir()
		if err != nil {
			return err
		}
		dir = d
	}
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("create documents directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	outputPath := filepath.Join(dir, task.FileName)
	size, err := writeFile(outputPath, resp.Body)

	s.tasksMutex.Lock()
	task.HTTPStatus = resp.StatusCode
	task.OutputPath = outputPath
	task.FileSize = size
	s.tasksMutex.Unlock()

	if err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	logger.Debug("file saved", zap.Int("status", resp.StatusCode), zap.Int64("bytes", size), zap.String("path", outputPath))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if s.sharer == nil {
		return ErrNoSharer
	}
	if err := s.sharer.Share(outputPath); err != nil {
		return fmt.Errorf("share: %w", err)
	}

	s.tasksMutex.Lock()
	task.Shared = true
	task.Status = model.TaskStatusCompleted
	s.tasksMutex.Unlock()
	return nil
}

func writeFile(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, platform.DefaultFilePermissions)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks, oldest first
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// RemoveTask forgets a finished task. The downloaded file is kept.
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsActive() {
		return fmt.Errorf("task is still active: %s", task.Status)
	}
	delete(s.tasks, id)
	return nil
}

// notifyUpdate calls the update callback, if set, with a snapshot of task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	cb := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()
	if cb != nil {
		cb(&snapshot)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.NewString()
}
