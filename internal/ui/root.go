package ui

import (
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
)

// Tab indexes of the main navigation
const (
	TabLibrary = iota
	TabDownloads
	TabProfile
	TabAccount
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	services     Services
	localization *Localization
	mobile       *MobileUI
	logger       *zap.Logger

	mainContent fyne.CanvasObject
	tabs        *container.AppTabs
	libraries   []*LibraryScreen
	downloads   *DownloadsScreen
	profile     *ProfileScreen
	account     *AccountForms
	viewer      *ViewerScreen

	notificationLabel *widget.Label

	// One sign-in alert at a time, however many screens fail
	authAlertMutex sync.Mutex
	authAlertShown bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, services Services) *RootUI {
	services.Logger = logging.OrNop(services.Logger).Named("ui")

	localization := NewLocalization()
	localization.SetLanguage(services.Settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		services:     services,
		localization: localization,
		mobile:       NewMobileUI(),
		logger:       services.Logger,
	}

	if services.Downloads != nil {
		services.Downloads.SetUpdateCallback(ui.onTaskUpdate)
	}

	ui.setupUI()
	return ui
}

// Start loads every screen's data
func (ui *RootUI) Start() {
	for _, lib := range ui.libraries {
		lib.Reload()
	}
	ui.profile.Reload()
}

// Close cancels all outstanding requests
func (ui *RootUI) Close() {
	ui.closeScreens()
}

// Localization returns the active localization
func (ui *RootUI) Localization() *Localization {
	return ui.localization
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.createMenu()

	libraryTabs := container.NewAppTabs()
	ui.libraries = nil
	for _, endpoint := range api.LibraryEndpoints {
		lib := NewLibraryScreen(endpoint, ui.services.API, ui.localization, ui.services.Logger, ui.openItem, ui.onUnauthenticated)
		ui.libraries = append(ui.libraries, lib)
		libraryTabs.Append(container.NewTabItemWithIcon(lib.Title(), iconForType(libraryType(endpoint)), lib.Content()))
	}

	ui.downloads = NewDownloadsScreen(ui.services, ui.localization)
	ui.downloads.Refresh()
	ui.profile = NewProfileScreen(ui.services.API, ui.localization, ui.services.Logger, ui.onUnauthenticated)
	ui.account = NewAccountForms(ui.services.API, ui.localization, ui.mobile, ui.services.Logger)

	ui.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon(ui.localization.GetText(KeyLibrary), theme.HomeIcon(), libraryTabs),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyDownloads), theme.DownloadIcon(), ui.downloads.Content()),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyProfile), theme.AccountIcon(), container.NewVScroll(ui.profile.Content())),
		container.NewTabItemWithIcon(ui.localization.GetText(KeyAccount), theme.LoginIcon(), ui.account.Content()),
	)
	if ui.mobile.IsMobileDevice() {
		ui.tabs.SetTabLocation(container.TabLocationBottom)
	}

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	title := widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}

	var left fyne.CanvasObject = title
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		left = container.NewHBox(img, title)
	}

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationLabel.Hide()

	top := container.NewVBox(container.NewBorder(nil, nil, left, settingsBtn), ui.notificationLabel)
	ui.mainContent = container.NewBorder(top, nil, nil, nil, ui.tabs)
	ui.window.SetContent(ui.mainContent)
}

// libraryType maps an endpoint to the content type it serves
func libraryType(endpoint string) string {
	switch endpoint {
	case api.EndpointVideos:
		return string(model.ContentTypeVideo)
	case api.EndpointImages:
		return string(model.ContentTypeImage)
	case api.EndpointPDFs:
		return string(model.ContentTypePDF)
	case api.EndpointTexts:
		return string(model.ContentTypeText)
	default:
		return ""
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	reloadItem := fyne.NewMenuItem(ui.localization.GetText(KeyReload), ui.Start)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	signOutItem := fyne.NewMenuItem(ui.localization.GetText(KeySignOut), ui.onSignOut)

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, reloadItem),
		languageMenu,
		fyne.NewMenu(ui.localization.GetText(KeyAccount), signOutItem),
	))
}

// rebuild recreates every screen, e.g. after a language change
func (ui *RootUI) rebuild() {
	ui.closeScreens()
	ui.setupUI()
	ui.Start()
}

func (ui *RootUI) closeScreens() {
	if ui.viewer != nil {
		ui.viewer.Close()
		ui.viewer = nil
	}
	for _, lib := range ui.libraries {
		lib.Close()
	}
	if ui.profile != nil {
		ui.profile.Close()
	}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.services.Settings.SetLanguage(langCode)
	ui.rebuild()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.services.Settings, ui.services.Tokens, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies saved settings to the running services
func (ui *RootUI) onSettingsSaved() {
	ui.services.API.SetBaseURL(ui.services.Settings.GetAPIURL())
	if ui.services.Downloads != nil {
		ui.services.Downloads.SetDocumentsDirectory(ui.services.Settings.GetDocumentsDirectory())
	}
	ui.localization.SetLanguage(ui.services.Settings.GetLanguage())

	ui.authAlertMutex.Lock()
	ui.authAlertShown = false
	ui.authAlertMutex.Unlock()

	ui.rebuild()
}

func (ui *RootUI) onSignOut() {
	ui.services.Tokens.ClearToken()
	ui.rebuild()
}

// onUnauthenticated alerts the user that a sign in is needed
func (ui *RootUI) onUnauthenticated() {
	ui.authAlertMutex.Lock()
	if ui.authAlertShown {
		ui.authAlertMutex.Unlock()
		return
	}
	ui.authAlertShown = true
	ui.authAlertMutex.Unlock()

	ui.logger.Info("sign in required")
	dialog.ShowInformation(ui.localization.GetText(KeySignInRequired), ui.localization.GetText(KeySignInAgain), ui.window)
}

// openItem shows the viewer for item in place of the tabs
func (ui *RootUI) openItem(item model.ContentItem) {
	if ui.viewer != nil {
		ui.viewer.Close()
	}
	ui.viewer = NewViewerScreen(item, ui.services, ui.localization, ui.closeViewer)
	ui.window.SetContent(ui.viewer.Content())
}

// closeViewer returns to the tabs
func (ui *RootUI) closeViewer() {
	ui.viewer = nil
	ui.window.SetContent(ui.mainContent)
}

// onTaskUpdate handles task updates from the download dispatcher
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	status := task.Status
	title := task.GetDisplayTitle()

	fyne.Do(func() {
		ui.downloads.Refresh()

		switch status {
		case model.TaskStatusDownloading:
			ui.showNotification(ui.localization.GetText(KeyDownloadStarted) + MiddleDotSeparator + title)
		case model.TaskStatusCompleted:
			ui.showNotification(ui.localization.GetText(KeyDownloadCompleted) + MiddleDotSeparator + title)
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   ui.localization.GetText(KeyDownloadCompleted),
				Content: title,
			})
		case model.TaskStatusError:
			ui.showNotification(ui.localization.GetText(KeyDownloadFailed) + MiddleDotSeparator + title)
		}
	})
}

// showNotification shows a message under the title bar for a few seconds
func (ui *RootUI) showNotification(message string) {
	label := ui.notificationLabel
	label.SetText(message)
	label.Show()

	go func() {
		<-timeAfter(ToastAutoHide)
		fyne.Do(func() {
			if label.Text == message {
				label.Hide()
			}
		})
	}()
}
