package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "calmkids.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// iconForType returns the list icon for a content type
func iconForType(t string) fyne.Resource {
	switch t {
	case "video":
		return theme.MediaVideoIcon()
	case "image":
		return theme.MediaPhotoIcon()
	case "pdf":
		return theme.DocumentIcon()
	case "text":
		return theme.FileTextIcon()
	default:
		return theme.QuestionIcon()
	}
}
