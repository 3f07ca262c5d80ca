package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calmkids/calmkids/internal/model"
)

// DownloadRow represents one download in the downloads list
type DownloadRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	titleLabel  *widget.Label
	statusLabel *widget.Label
	openBtn     *widget.Button
	shareBtn    *widget.Button
	removeBtn   *widget.Button

	onOpen   func(filePath string)
	onShare  func(filePath string)
	onRemove func(taskID string)
}

// NewDownloadRow creates an empty row
func NewDownloadRow(localization *Localization) *DownloadRow {
	dr := &DownloadRow{localization: localization}
	dr.ExtendBaseWidget(dr)
	dr.createUI()
	return dr
}

// SetCallbacks sets the action callbacks
func (dr *DownloadRow) SetCallbacks(onOpen, onShare func(filePath string), onRemove func(taskID string)) {
	dr.onOpen = onOpen
	dr.onShare = onShare
	dr.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (dr *DownloadRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	dr.task = task
	dr.updateFromTask()
	dr.Refresh()
}

func (dr *DownloadRow) createUI() {
	dr.titleLabel = widget.NewLabel("")
	dr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	dr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	dr.statusLabel = widget.NewLabel("")
	dr.statusLabel.Truncation = fyne.TextTruncateEllipsis

	dr.openBtn = widget.NewButtonWithIcon("", theme.FileIcon(), func() {
		if dr.task != nil && dr.task.OutputPath != "" && dr.onOpen != nil {
			dr.onOpen(dr.task.OutputPath)
		}
	})
	dr.shareBtn = widget.NewButtonWithIcon("", theme.MailSendIcon(), func() {
		if dr.task != nil && dr.task.OutputPath != "" && dr.onShare != nil {
			dr.onShare(dr.task.OutputPath)
		}
	})
	dr.removeBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if dr.task != nil && dr.onRemove != nil {
			dr.onRemove(dr.task.ID)
		}
	})
	dr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (dr *DownloadRow) updateFromTask() {
	task := dr.task
	dr.titleLabel.SetText(task.GetDisplayTitle())

	status := task.Status.String()
	if task.FileSize > 0 {
		status += MiddleDotSeparator + task.GetSizeString()
	}
	if task.Status == model.TaskStatusError && task.LastError != "" {
		status += MiddleDotSeparator + task.LastError
		dr.statusLabel.Importance = widget.DangerImportance
	} else if task.Status == model.TaskStatusCompleted {
		dr.statusLabel.Importance = widget.SuccessImportance
	} else {
		dr.statusLabel.Importance = widget.MediumImportance
	}
	dr.statusLabel.SetText(status)

	// Failed downloads still leave their body on disk, so only a completed
	// task offers the file
	if task.Status == model.TaskStatusCompleted && task.OutputPath != "" {
		dr.openBtn.Enable()
		dr.shareBtn.Enable()
	} else {
		dr.openBtn.Disable()
		dr.shareBtn.Disable()
	}

	if task.Status.IsActive() {
		dr.removeBtn.Disable()
	} else {
		dr.removeBtn.Enable()
	}
}

// CreateRenderer implements fyne.Widget
func (dr *DownloadRow) CreateRenderer() fyne.WidgetRenderer {
	text := container.NewVBox(dr.titleLabel, dr.statusLabel)
	buttons := container.NewHBox(dr.openBtn, dr.shareBtn, dr.removeBtn)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, buttons, text))
}
