package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents a single user-triggered download
type DownloadTask struct {
	ID         string
	URL        string
	Status     TaskStatus
	FileName   string    // local file name derived from the URL
	OutputPath string    // path to downloaded file
	HTTPStatus int       // status code of the download response
	FileSize   int64     // bytes written
	Shared     bool      // share action was invoked
	LastError  string    // last error message if any
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetSizeString returns the file size in a human readable form, or "—" if unknown
func (dt *DownloadTask) GetSizeString() string {
	if dt.FileSize <= 0 {
		return "—"
	}

	const unit = 1024
	if dt.FileSize < unit {
		return fmt.Sprintf("%d B", dt.FileSize)
	}

	div, exp := int64(unit), 0
	for n := dt.FileSize / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(dt.FileSize)/float64(div), "KMGT"[exp])
}

// GetDisplayTitle returns file name, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.FileName != "" {
		return dt.FileName
	}

	if dt.OutputPath != "" {
		// Support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	return dt.URL
}
