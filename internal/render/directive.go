// Package render decides how a content item is presented. Resolve is a pure
// function of platform, content type and file URL.
package render

import (
	"runtime"

	"github.com/calmkids/calmkids/internal/model"
)

// Platform is the rendering target
type Platform string

const (
	PlatformWeb    Platform = "web"
	PlatformNative Platform = "native"
)

// CurrentPlatform reports web for js/wasm builds and native otherwise
func CurrentPlatform() Platform {
	if runtime.GOOS == "js" {
		return PlatformWeb
	}
	return PlatformNative
}

// Kind is the rendering strategy
type Kind string

const (
	KindEmbed         Kind = "embed"
	KindVideo         Kind = "video"
	KindImage         Kind = "image"
	KindDownloadPanel Kind = "download_panel"
	KindUnsupported   Kind = "unsupported"
)

// Fit is how media is scaled into its frame
type Fit string

const (
	FitNone    Fit = ""
	FitContain Fit = "contain"
)

// Notice texts
const (
	UnsupportedMessage   = "Unsupported content type"
	DownloadPanelMessage = "This activity opens outside the app. Tap Download to save it and open it with another app."
)

// Directive is the chosen way to show one content file
type Directive struct {
	Kind         Kind
	URL          string
	Fit          Fit
	UserControls bool
	Message      string
}

// Resolve maps platform, type and file URL to a directive
func Resolve(p Platform, t model.ContentType, fileURL string) Directive {
	if p == PlatformWeb {
		return Directive{Kind: KindEmbed, URL: fileURL}
	}

	switch t.Normalize() {
	case model.ContentTypeVideo:
		return Directive{Kind: KindVideo, URL: fileURL, Fit: FitContain, UserControls: true}
	case model.ContentTypeImage:
		return Directive{Kind: KindImage, URL: fileURL, Fit: FitContain}
	case model.ContentTypePDF, model.ContentTypeText:
		return Directive{Kind: KindDownloadPanel, URL: fileURL, Message: DownloadPanelMessage}
	default:
		return Directive{Kind: KindUnsupported, URL: fileURL, Message: UnsupportedMessage}
	}
}

// ForItem resolves the directive for an item's primary file
func ForItem(p Platform, item *model.ContentItem) Directive {
	file, _ := item.PrimaryFile()
	return Resolve(p, item.Type, file.FileURL)
}

// Downloadable reports whether the viewer offers the download action
func (d Directive) Downloadable() bool {
	return d.URL != "" && d.Kind != KindUnsupported
}
