package download

import (
	"context"
	"net/url"

	"github.com/calmkids/calmkids/internal/model"
)

// Downloader defines the interface for the download dispatcher. Tasks handed
// out by it are copies; they do not change after they are returned.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	Dispatch(ctx context.Context, fileURL string) *model.DownloadTask
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	RemoveTask(id string) error

	// SetDocumentsDirectory sets where native downloads are saved
	SetDocumentsDirectory(dir string)
}

// Sharer hands a local file to the platform share action
type Sharer interface {
	Share(filePath string) error
}

// URLOpener opens a URL in a new browser context. fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}
