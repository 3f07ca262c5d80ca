package ui

import (
	"context"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/platform"
	"github.com/calmkids/calmkids/internal/render"
)

// ViewerScreen shows a single content item the way its directive says
type ViewerScreen struct {
	item         model.ContentItem
	directive    render.Directive
	services     Services
	localization *Localization
	logger       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	series  *SeriesView
	image   *canvas.Image
	openBtn *widget.Button
	content fyne.CanvasObject
	onBack  func()
}

// NewViewerScreen builds the viewer for item
func NewViewerScreen(item model.ContentItem, services Services, loc *Localization, onBack func()) *ViewerScreen {
	ctx, cancel := context.WithCancel(context.Background())
	v := &ViewerScreen{
		item:         item,
		directive:    render.ForItem(services.Platform, &item),
		services:     services,
		localization: loc,
		logger:       logging.OrNop(services.Logger).With(zap.String("item_id", item.ID)),
		ctx:          ctx,
		cancel:       cancel,
		onBack:       onBack,
	}
	v.createUI()
	return v
}

// Content returns the screen's root object
func (v *ViewerScreen) Content() fyne.CanvasObject {
	return v.content
}

// Directive returns the rendering decision for the item
func (v *ViewerScreen) Directive() render.Directive {
	return v.directive
}

// Close stops background work started by the viewer
func (v *ViewerScreen) Close() {
	v.cancel()
	if v.series != nil {
		v.series.Close()
	}
}

func (v *ViewerScreen) createUI() {
	backBtn := widget.NewButtonWithIcon(v.localization.GetText(KeyBack), theme.NavigateBackIcon(), func() {
		v.Close()
		if v.onBack != nil {
			v.onBack()
		}
	})
	backBtn.Importance = widget.LowImportance

	title := widget.NewLabel(v.item.DisplayTitle())
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Wrapping = fyne.TextWrapWord

	header := container.NewBorder(nil, nil, backBtn, nil, title)

	var footer fyne.CanvasObject
	if v.item.Description != "" {
		desc := widget.NewLabel(v.item.Description)
		desc.Wrapping = fyne.TextWrapWord
		footer = desc
	}

	v.content = container.NewBorder(header, footer, nil, nil, v.directiveView())
}

// directiveView builds the body for the item's directive
func (v *ViewerScreen) directiveView() fyne.CanvasObject {
	d := v.directive

	switch d.Kind {
	case render.KindEmbed:
		// Fyne has no inline frame; the browser opens the file in a new context
		v.openBtn = widget.NewButtonWithIcon(v.localization.GetText(KeyOpen), theme.ComputerIcon(), func() { v.openInBrowser(d.URL) })
		v.openBtn.Importance = widget.HighImportance
		return container.NewCenter(container.NewVBox(v.linkTo(d.URL), v.openBtn))

	case render.KindVideo:
		// No video widget in Fyne: play hands the URL to the system player
		if v.services.Series != nil && platform.IsSeriesURL(d.URL) {
			v.series = NewSeriesView(v.item, v.services, v.localization, v.openURL)
			v.series.Reload()
			return v.series.Content()
		}
		play := widget.NewButtonWithIcon(v.localization.GetText(KeyPlay), theme.MediaPlayIcon(), func() { v.openURL(d.URL) })
		play.Importance = widget.HighImportance
		return container.NewCenter(container.NewVBox(
			widget.NewIcon(theme.MediaVideoIcon()),
			play,
			v.downloadButton(d.URL),
		))

	case render.KindImage:
		v.image = canvas.NewImageFromResource(nil)
		v.image.FillMode = canvas.ImageFillContain
		v.image.SetMinSize(fyne.NewSize(ImageMinWidth, ImageMinHeight))
		v.loadImage(d.URL)
		return container.NewBorder(nil, container.NewCenter(v.downloadButton(d.URL)), nil, nil, v.image)

	case render.KindDownloadPanel:
		msg := widget.NewLabel(v.localization.GetText(KeyDownloadPanelText))
		msg.Wrapping = fyne.TextWrapWord
		msg.Alignment = fyne.TextAlignCenter
		return container.NewVBox(widget.NewIcon(theme.DocumentIcon()), msg, container.NewCenter(v.downloadButton(d.URL)))

	default:
		msg := widget.NewLabel(v.localization.GetText(KeyUnsupportedContent))
		msg.Alignment = fyne.TextAlignCenter
		return container.NewCenter(msg)
	}
}

func (v *ViewerScreen) linkTo(raw string) fyne.CanvasObject {
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return widget.NewLabel(DashPlaceholder)
	}
	return widget.NewHyperlink(v.item.DisplayTitle(), u)
}

func (v *ViewerScreen) downloadButton(fileURL string) *widget.Button {
	btn := widget.NewButtonWithIcon(v.localization.GetText(KeyDownload), theme.DownloadIcon(), func() { v.download(fileURL) })
	if !v.directive.Downloadable() || v.services.Downloads == nil {
		btn.Disable()
	}
	return btn
}

// openInBrowser goes through the dispatcher so web opens are tracked like
// downloads
func (v *ViewerScreen) openInBrowser(fileURL string) {
	if v.services.Downloads == nil {
		v.openURL(fileURL)
		return
	}
	v.download(fileURL)
}

// download hands the file to the dispatcher. The download outlives the viewer.
func (v *ViewerScreen) download(fileURL string) {
	go v.services.Downloads.Dispatch(context.Background(), fileURL)
}

func (v *ViewerScreen) openURL(raw string) {
	if v.services.Opener == nil {
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		v.logger.Warn("invalid content URL", zap.String("url", raw), zap.Error(err))
		return
	}
	if err := v.services.Opener.OpenURL(u); err != nil {
		v.logger.Error("open URL failed", zap.String("url", raw), zap.Error(err))
	}
}

// loadImage fetches the picture off the UI goroutine
func (v *ViewerScreen) loadImage(raw string) {
	if raw == "" {
		return
	}
	go func() {
		res, err := fyne.LoadResourceFromURLString(raw)
		if v.ctx.Err() != nil {
			return
		}
		if err != nil {
			v.logger.Warn("image load failed", zap.String("url", raw), zap.Error(err))
			fyne.Do(func() {
				v.image.Resource = theme.BrokenImageIcon()
				v.image.Refresh()
			})
			return
		}
		fyne.Do(func() {
			v.image.Resource = res
			v.image.Refresh()
		})
	}()
}
