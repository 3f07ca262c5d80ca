package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/platform"
)

// openFile is replaced in tests
var openFile = platform.OpenFileWithDefaultApp

// DownloadsScreen lists the downloads started in this session
type DownloadsScreen struct {
	services     Services
	localization *Localization
	logger       *zap.Logger

	tasks   []*model.DownloadTask
	list    *widget.List
	empty   *widget.Label
	content fyne.CanvasObject
}

// NewDownloadsScreen creates the downloads list
func NewDownloadsScreen(services Services, loc *Localization) *DownloadsScreen {
	ds := &DownloadsScreen{
		services:     services,
		localization: loc,
		logger:       logging.OrNop(services.Logger).With(zap.String("screen", "downloads")),
	}
	ds.createUI()
	return ds
}

// Content returns the screen's root object
func (ds *DownloadsScreen) Content() fyne.CanvasObject {
	return ds.content
}

func (ds *DownloadsScreen) createUI() {
	ds.empty = widget.NewLabel(ds.localization.GetText(KeyNoDownloads))
	ds.empty.Alignment = fyne.TextAlignCenter

	ds.list = widget.NewList(
		func() int { return len(ds.tasks) },
		func() fyne.CanvasObject {
			row := NewDownloadRow(ds.localization)
			row.SetCallbacks(ds.onOpen, ds.onShare, ds.onRemove)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(ds.tasks) {
				obj.(*DownloadRow).UpdateTask(ds.tasks[id])
			}
		},
	)

	ds.content = container.NewBorder(ds.empty, nil, nil, nil, ds.list)
}

// Refresh reloads the task list; runs on the UI goroutine
func (ds *DownloadsScreen) Refresh() {
	if ds.services.Downloads != nil {
		ds.tasks = ds.services.Downloads.GetAllTasks()
	}
	if len(ds.tasks) == 0 {
		ds.empty.Show()
	} else {
		ds.empty.Hide()
	}
	ds.list.Refresh()
}

func (ds *DownloadsScreen) onOpen(filePath string) {
	if err := openFile(filePath); err != nil {
		ds.logger.Error("open file failed", zap.String("path", filePath), zap.Error(err))
	}
}

func (ds *DownloadsScreen) onShare(filePath string) {
	if ds.services.Sharer == nil {
		return
	}
	if err := ds.services.Sharer.Share(filePath); err != nil {
		ds.logger.Error("share failed", zap.String("path", filePath), zap.Error(err))
	}
}

func (ds *DownloadsScreen) onRemove(taskID string) {
	if err := ds.services.Downloads.RemoveTask(taskID); err != nil {
		ds.logger.Warn("remove task failed", zap.String("task_id", taskID), zap.Error(err))
		return
	}
	ds.Refresh()
}
