package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/calmkids/calmkids/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyAPIURL       = "api_url"
	KeyLanguage     = "app_language"
	KeyDocumentsDir = "documents_directory"
)

// Default values
const (
	DefaultAPIURL   = "http://localhost:5000/api"
	DefaultLanguage = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// ApplyEnv seeds preferences from the environment. Values already chosen by
// the user in the settings dialog are left alone.
func (s *Settings) ApplyEnv(env EnvConfig) {
	if s.app.Preferences().String(KeyAPIURL) == "" && env.APIURL != "" {
		s.SetAPIURL(env.APIURL)
	}
	if s.app.Preferences().String(KeyDocumentsDir) == "" && env.DocumentsDir != "" {
		s.SetDocumentsDirectory(env.DocumentsDir)
	}
}

// GetAPIURL returns the configured API base URL without a trailing slash
func (s *Settings) GetAPIURL() string {
	apiURL := s.app.Preferences().String(KeyAPIURL)
	if apiURL == "" {
		s.SetAPIURL(DefaultAPIURL)
		return DefaultAPIURL
	}
	return apiURL
}

// SetAPIURL sets the API base URL
func (s *Settings) SetAPIURL(apiURL string) {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	s.app.Preferences().SetString(KeyAPIURL, apiURL)
}

// GetDocumentsDirectory returns the directory downloads are saved into
func (s *Settings) GetDocumentsDirectory() string {
	dir := s.app.Preferences().String(KeyDocumentsDir)
	if dir == "" {
		defaultDir, err := platform.GetDocumentsDir()
		if err != nil {
			defaultDir = platform.FallbackDocumentsDir
		}
		s.SetDocumentsDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDocumentsDirectory sets the documents directory
func (s *Settings) SetDocumentsDirectory(dir string) {
	s.app.Preferences().SetString(KeyDocumentsDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
		"pt":     "Português",
	}
}
