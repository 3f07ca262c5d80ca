package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	isMobile func() bool
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI() *MobileUI {
	return &MobileUI{isMobile: func() bool { return fyne.CurrentDevice().IsMobile() }}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.isMobile()
}

// FormLayout stacks labelled fields. Phones get one column with labels above
// their fields; desktops get a two column form.
func (m *MobileUI) FormLayout(items ...*widget.FormItem) fyne.CanvasObject {
	if !m.IsMobileDevice() {
		return widget.NewForm(items...)
	}

	box := container.NewVBox()
	for _, item := range items {
		label := widget.NewLabel(item.Text)
		label.TextStyle = fyne.TextStyle{Bold: true}
		box.Add(label)
		box.Add(item.Widget)
	}
	return box
}

// CreateMobileButton creates a button sized for touch on phones
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) fyne.CanvasObject {
	btn := widget.NewButton(text, onTapped)
	btn.Importance = widget.HighImportance
	if !m.IsMobileDevice() {
		return btn
	}
	return container.New(layout.NewGridWrapLayout(fyne.NewSize(MobileButtonSize*4, MobileButtonSize)), btn)
}

// CreateMobileEntry creates an entry field with a placeholder
func (m *MobileUI) CreateMobileEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// GetMobileSpacing returns appropriate spacing for mobile devices
func (m *MobileUI) GetMobileSpacing() float32 {
	if m.IsMobileDevice() {
		return 16
	}
	return 8
}
