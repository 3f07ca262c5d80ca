package ui

import (
	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Language codes
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangSpanish = "es"
	LangPortug  = "pt"
)

// supportedTags is ordered so the first entry is the fallback
var supportedTags = []language.Tag{language.English, language.Spanish, language.Portuguese}

var languageMatcher = language.NewMatcher(supportedTags)

// systemLocale returns the device locale; replaced in tests
var systemLocale = func() string {
	return string(lang.SystemLocale())
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyLibrary            = "library"
	KeyVideos             = "videos"
	KeyImages             = "images"
	KeyPDFs               = "pdfs"
	KeyTexts              = "texts"
	KeyDownloads          = "downloads"
	KeyProfile            = "profile"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyAccount            = "account"
	KeyLanguage           = "language"
	KeyAPIURL             = "api_url"
	KeyDocumentsDirectory = "documents_directory"
	KeyAccessToken        = "access_token"
	KeySignOut            = "sign_out"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyBack               = "back"
	KeyReload             = "reload"
	KeyLoading            = "loading"
	KeyDownload           = "download"
	KeyOpen               = "open"
	KeyShare              = "share"
	KeyPlay               = "play"
	KeyEpisodes           = "episodes"
	KeyNoContent          = "no_content"
	KeyNoDownloads        = "no_downloads"
	KeyUnsupportedContent = "unsupported_content"
	KeyDownloadPanelText  = "download_panel_text"
	KeyDownloadStarted    = "download_started"
	KeyDownloadCompleted  = "download_completed"
	KeyDownloadFailed     = "download_failed"
	KeySettingsSaved      = "settings_saved"
	KeySignInRequired     = "sign_in_required"
	KeySignInAgain        = "sign_in_again"
	KeyName               = "name"
	KeyEmail              = "email"
	KeyAge                = "age"
	KeyGender             = "gender"
	KeyFirstName          = "first_name"
	KeyLastName           = "last_name"
	KeyPassword           = "password"
	KeyConfirmPassword    = "confirm_password"
	KeyContact            = "contact"
	KeyResetToken         = "reset_token"
	KeyRegister           = "register"
	KeyForgotPassword     = "forgot_password"
	KeyResetPassword      = "reset_password"
	KeySendResetLink      = "send_reset_link"
	KeySubmit             = "submit"
	KeyPasswordTooShort   = "password_too_short"
	KeyPasswordMismatch   = "password_mismatch"
	KeyEmailRequired      = "email_required"
	KeyEmailInvalid       = "email_invalid"
	KeyNameRequired       = "name_required"
	KeyAgeInvalid         = "age_invalid"
	KeyContactInvalid     = "contact_invalid"
	KeyTokenRequired      = "token_required"
	KeyAges               = "ages"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" resolves the device locale
// to the closest supported language.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem || lang == "" {
		lang = MatchLanguage(systemLocale())
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// MatchLanguage maps a BCP 47 locale such as "pt-BR" to a supported language
// code, defaulting to English
func MatchLanguage(locale string) string {
	tag, _ := language.MatchStrings(languageMatcher, locale)
	base, _ := tag.Base()
	return base.String()
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangSpanish: "Español",
		LangPortug:  "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:           "Calm Kids",
		KeyLibrary:            "Library",
		KeyVideos:             "Videos",
		KeyImages:             "Images",
		KeyPDFs:               "Worksheets",
		KeyTexts:              "Stories",
		KeyDownloads:          "Downloads",
		KeyProfile:            "Profile",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyAccount:            "Account",
		KeyLanguage:           "Language",
		KeyAPIURL:             "Server Address",
		KeyDocumentsDirectory: "Documents Directory",
		KeyAccessToken:        "Access Token",
		KeySignOut:            "Sign Out",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyBack:               "Back",
		KeyReload:             "Reload",
		KeyLoading:            "Loading...",
		KeyDownload:           "Download",
		KeyOpen:               "Open",
		KeyShare:              "Share",
		KeyPlay:               "Play",
		KeyEpisodes:           "Episodes",
		KeyNoContent:          "Nothing here yet",
		KeyNoDownloads:        "No downloads yet",
		KeyUnsupportedContent: "Unsupported content type",
		KeyDownloadPanelText:  "This activity opens outside the app. Tap Download to save it and open it with another app.",
		KeyDownloadStarted:    "Download started",
		KeyDownloadCompleted:  "Download completed",
		KeyDownloadFailed:     "Download failed",
		KeySettingsSaved:      "Settings saved successfully!",
		KeySignInRequired:     "Sign in required",
		KeySignInAgain:        "Please sign in again.",
		KeyName:               "Name",
		KeyEmail:              "Email",
		KeyAge:                "Age",
		KeyGender:             "Gender",
		KeyFirstName:          "First Name",
		KeyLastName:           "Last Name",
		KeyPassword:           "Password",
		KeyConfirmPassword:    "Confirm Password",
		KeyContact:            "Phone Number",
		KeyResetToken:         "Reset Code",
		KeyRegister:           "Register",
		KeyForgotPassword:     "Forgot Password",
		KeyResetPassword:      "Reset Password",
		KeySendResetLink:      "Send Reset Link",
		KeySubmit:             "Submit",
		KeyPasswordTooShort:   "Password must be at least 8 characters",
		KeyPasswordMismatch:   "Passwords do not match",
		KeyEmailRequired:      "Email is required",
		KeyEmailInvalid:       "Email address is not valid",
		KeyNameRequired:       "First and last name are required",
		KeyAgeInvalid:         "Age must be a positive number",
		KeyContactInvalid:     "Phone number must have 10 digits",
		KeyTokenRequired:      "Reset code is required",
		KeyAges:               "Ages",
	}

	l.texts[LangSpanish] = map[string]string{
		KeyAppTitle:           "Calm Kids",
		KeyLibrary:            "Biblioteca",
		KeyVideos:             "Videos",
		KeyImages:             "Imágenes",
		KeyPDFs:               "Fichas",
		KeyTexts:              "Cuentos",
		KeyDownloads:          "Descargas",
		KeyProfile:            "Perfil",
		KeySettings:           "Ajustes",
		KeyFile:               "Archivo",
		KeyAccount:            "Cuenta",
		KeyLanguage:           "Idioma",
		KeyAPIURL:             "Dirección del servidor",
		KeyDocumentsDirectory: "Carpeta de documentos",
		KeyAccessToken:        "Token de acceso",
		KeySignOut:            "Cerrar sesión",
		KeySave:               "Guardar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Examinar",
		KeyBack:               "Volver",
		KeyReload:             "Recargar",
		KeyLoading:            "Cargando...",
		KeyDownload:           "Descargar",
		KeyOpen:               "Abrir",
		KeyShare:              "Compartir",
		KeyPlay:               "Reproducir",
		KeyEpisodes:           "Episodios",
		KeyNoContent:          "Todavía no hay nada aquí",
		KeyNoDownloads:        "Todavía no hay descargas",
		KeyUnsupportedContent: "Tipo de contenido no compatible",
		KeyDownloadPanelText:  "Esta actividad se abre fuera de la aplicación. Toca Descargar para guardarla y abrirla con otra aplicación.",
		KeyDownloadStarted:    "Descarga iniciada",
		KeyDownloadCompleted:  "Descarga completada",
		KeyDownloadFailed:     "La descarga falló",
		KeySettingsSaved:      "¡Ajustes guardados!",
		KeySignInRequired:     "Inicio de sesión requerido",
		KeySignInAgain:        "Vuelve a iniciar sesión.",
		KeyName:               "Nombre",
		KeyEmail:              "Correo electrónico",
		KeyAge:                "Edad",
		KeyGender:             "Género",
		KeyFirstName:          "Nombre",
		KeyLastName:           "Apellido",
		KeyPassword:           "Contraseña",
		KeyConfirmPassword:    "Confirmar contraseña",
		KeyContact:            "Teléfono",
		KeyResetToken:         "Código de restablecimiento",
		KeyRegister:           "Registrarse",
		KeyForgotPassword:     "Olvidé mi contraseña",
		KeyResetPassword:      "Restablecer contraseña",
		KeySendResetLink:      "Enviar enlace",
		KeySubmit:             "Enviar",
		KeyPasswordTooShort:   "La contraseña debe tener al menos 8 caracteres",
		KeyPasswordMismatch:   "Las contraseñas no coinciden",
		KeyEmailRequired:      "El correo es obligatorio",
		KeyEmailInvalid:       "El correo no es válido",
		KeyNameRequired:       "Nombre y apellido son obligatorios",
		KeyAgeInvalid:         "La edad debe ser un número positivo",
		KeyContactInvalid:     "El teléfono debe tener 10 dígitos",
		KeyTokenRequired:      "El código es obligatorio",
		KeyAges:               "Edades",
	}

	l.texts[LangPortug] = map[string]string{
		KeyAppTitle:           "Calm Kids",
		KeyLibrary:            "Biblioteca",
		KeyVideos:             "Vídeos",
		KeyImages:             "Imagens",
		KeyPDFs:               "Atividades",
		KeyTexts:              "Histórias",
		KeyDownloads:          "Downloads",
		KeyProfile:            "Perfil",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyAccount:            "Conta",
		KeyLanguage:           "Idioma",
		KeyAPIURL:             "Endereço do servidor",
		KeyDocumentsDirectory: "Pasta de documentos",
		KeyAccessToken:        "Token de acesso",
		KeySignOut:            "Sair",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Navegar",
		KeyBack:               "Voltar",
		KeyReload:             "Recarregar",
		KeyLoading:            "Carregando...",
		KeyDownload:           "Baixar",
		KeyOpen:               "Abrir",
		KeyShare:              "Compartilhar",
		KeyPlay:               "Reproduzir",
		KeyEpisodes:           "Episódios",
		KeyNoContent:          "Nada aqui ainda",
		KeyNoDownloads:        "Nenhum download ainda",
		KeyUnsupportedContent: "Tipo de conteúdo não suportado",
		KeyDownloadPanelText:  "Esta atividade abre fora do aplicativo. Toque em Baixar para salvá-la e abri-la com outro aplicativo.",
		KeyDownloadStarted:    "Download iniciado",
		KeyDownloadCompleted:  "Download concluído",
		KeyDownloadFailed:     "Falha no download",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeySignInRequired:     "É necessário entrar",
		KeySignInAgain:        "Entre novamente.",
		KeyName:               "Nome",
		KeyEmail:              "E-mail",
		KeyAge:                "Idade",
		KeyGender:             "Gênero",
		KeyFirstName:          "Nome",
		KeyLastName:           "Sobrenome",
		KeyPassword:           "Senha",
		KeyConfirmPassword:    "Confirmar senha",
		KeyContact:            "Telefone",
		KeyResetToken:         "Código de redefinição",
		KeyRegister:           "Cadastrar",
		KeyForgotPassword:     "Esqueci a senha",
		KeyResetPassword:      "Redefinir senha",
		KeySendResetLink:      "Enviar link",
		KeySubmit:             "Enviar",
		KeyPasswordTooShort:   "A senha deve ter pelo menos 8 caracteres",
		KeyPasswordMismatch:   "As senhas não coincidem",
		KeyEmailRequired:      "O e-mail é obrigatório",
		KeyEmailInvalid:       "O e-mail não é válido",
		KeyNameRequired:       "Nome e sobrenome são obrigatórios",
		KeyAgeInvalid:         "A idade deve ser um número positivo",
		KeyContactInvalid:     "O telefone deve ter 10 dígitos",
		KeyTokenRequired:      "O código é obrigatório",
		KeyAges:               "Idades",
	}
}
