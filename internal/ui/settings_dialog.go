package ui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	tokens       auth.TokenStore
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiURLEntry    *widget.Entry
	docsDirEntry   *widget.Entry
	tokenEntry     *widget.Entry
	languageSelect *widget.Select
	languageCodes  map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, tokens auth.TokenStore, loc *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		tokens:       tokens,
		localization: loc,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder(config.DefaultAPIURL)

	sd.docsDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	docsDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.docsDirEntry)

	sd.tokenEntry = widget.NewPasswordEntry()
	signOutBtn := widget.NewButton(loc.GetText(KeySignOut), func() {
		sd.tokens.ClearToken()
		sd.tokenEntry.SetText("")
	})
	signOutBtn.Importance = widget.DangerImportance
	tokenRow := container.NewBorder(nil, nil, nil, signOutBtn, sd.tokenEntry)

	sd.languageCodes = make(map[string]string)
	names := make([]string, 0)
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	form := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyAPIURL), sd.apiURLEntry),
		widget.NewFormItem(loc.GetText(KeyDocumentsDirectory), docsDirRow),
		widget.NewFormItem(loc.GetText(KeyAccessToken), tokenRow),
		widget.NewFormItem(loc.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogMinWidth, DialogMinHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiURLEntry.SetText(sd.settings.GetAPIURL())
	sd.docsDirEntry.SetText(sd.settings.GetDocumentsDirectory())
	token, _ := sd.tokens.Token()
	sd.tokenEntry.SetText(token)

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.docsDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the entered values to preferences and the token store
func (sd *SettingsDialog) save() {
	sd.settings.SetAPIURL(sd.apiURLEntry.Text)

	if dir := strings.TrimSpace(sd.docsDirEntry.Text); dir != "" {
		sd.settings.SetDocumentsDirectory(dir)
	}

	if token := strings.TrimSpace(sd.tokenEntry.Text); token != "" {
		sd.tokens.SetToken(token)
	} else {
		sd.tokens.ClearToken()
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
