package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/state"
)

// libraryTitleKeys maps content endpoints to their tab titles
var libraryTitleKeys = map[string]string{
	api.EndpointVideos: KeyVideos,
	api.EndpointImages: KeyImages,
	api.EndpointPDFs:   KeyPDFs,
	api.EndpointTexts:  KeyTexts,
}

// LibraryScreen lists the items of one content endpoint
type LibraryScreen struct {
	endpoint     string
	loader       *state.Loader[[]model.ContentItem]
	localization *Localization
	logger       *zap.Logger

	items      []model.ContentItem
	list       *widget.List
	statusText *widget.Label
	reloadBtn  *widget.Button
	content    fyne.CanvasObject

	onOpen            func(model.ContentItem)
	onUnauthenticated func()
}

// NewLibraryScreen creates the list for endpoint. onOpen is called when an
// item is tapped, onUnauthenticated when a load finds no usable token.
func NewLibraryScreen(endpoint string, backend Backend, loc *Localization, logger *zap.Logger,
	onOpen func(model.ContentItem), onUnauthenticated func()) *LibraryScreen {
	logger = logging.OrNop(logger).With(zap.String("endpoint", endpoint))
	ls := &LibraryScreen{
		endpoint:          endpoint,
		localization:      loc,
		logger:            logger,
		onOpen:            onOpen,
		onUnauthenticated: onUnauthenticated,
	}
	ls.loader = state.NewLoader(func(ctx context.Context) ([]model.ContentItem, error) {
		return backend.ListContent(ctx, endpoint)
	}, logger)
	ls.loader.SetChangeCallback(func(snap state.Snapshot[[]model.ContentItem]) {
		fyne.Do(func() { ls.apply(snap) })
	})

	ls.createUI()
	return ls
}

// Title returns the localized tab title
func (ls *LibraryScreen) Title() string {
	if key, ok := libraryTitleKeys[ls.endpoint]; ok {
		return ls.localization.GetText(key)
	}
	return ls.endpoint
}

// Content returns the screen's root object
func (ls *LibraryScreen) Content() fyne.CanvasObject {
	return ls.content
}

// Reload fetches the list again in the background
func (ls *LibraryScreen) Reload() {
	go ls.loader.Load()
}

// Close cancels any load in flight; the screen must not be reused
func (ls *LibraryScreen) Close() {
	ls.loader.Close()
}

func (ls *LibraryScreen) createUI() {
	ls.statusText = widget.NewLabel("")
	ls.statusText.Wrapping = fyne.TextWrapWord
	ls.statusText.Hide()

	ls.reloadBtn = widget.NewButton(ls.localization.GetText(KeyReload), ls.Reload)
	ls.reloadBtn.Importance = widget.LowImportance

	ls.list = widget.NewList(
		func() int { return len(ls.items) },
		func() fyne.CanvasObject { return newContentRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(ls.items) {
				obj.(*contentRow).update(ls.items[id], ls.localization)
			}
		},
	)
	ls.list.OnSelected = func(id widget.ListItemID) {
		ls.list.UnselectAll()
		if id < len(ls.items) && ls.onOpen != nil {
			ls.onOpen(ls.items[id])
		}
	}

	top := container.NewBorder(nil, nil, nil, ls.reloadBtn, ls.statusText)
	ls.content = container.NewBorder(top, nil, nil, nil, NewPullToRefresh(ls.list, func() { ls.loader.Load() }))
}

// apply renders a loader snapshot; runs on the UI goroutine
func (ls *LibraryScreen) apply(snap state.Snapshot[[]model.ContentItem]) {
	ls.items = snap.Value

	switch {
	case snap.Loading:
		ls.statusText.SetText(ls.localization.GetText(KeyLoading))
		ls.statusText.Show()
	case snap.Err != nil:
		ls.statusText.SetText(IconError + " " + errorText(snap.Err, ls.localization))
		ls.statusText.Show()
		if errors.Is(snap.Err, api.ErrUnauthenticated) && ls.onUnauthenticated != nil {
			ls.onUnauthenticated()
		}
	case len(snap.Value) == 0:
		ls.statusText.SetText(ls.localization.GetText(KeyNoContent))
		ls.statusText.Show()
	default:
		ls.statusText.Hide()
	}

	ls.list.Refresh()
}

// contentRow shows one item in a library list
type contentRow struct {
	widget.BaseWidget

	icon        *widget.Icon
	title       *widget.Label
	description *widget.Label
	ages        *widget.Label
}

func newContentRow() *contentRow {
	row := &contentRow{
		icon:        widget.NewIcon(nil),
		title:       widget.NewLabel(""),
		description: widget.NewLabel(""),
		ages:        widget.NewLabel(""),
	}
	row.title.TextStyle = fyne.TextStyle{Bold: true}
	row.title.Truncation = fyne.TextTruncateEllipsis
	row.description.Truncation = fyne.TextTruncateEllipsis
	row.ages.Alignment = fyne.TextAlignTrailing
	row.ExtendBaseWidget(row)
	return row
}

func (r *contentRow) update(item model.ContentItem, loc *Localization) {
	r.icon.SetResource(iconForType(string(item.Type.Normalize())))
	r.title.SetText(item.DisplayTitle())
	r.description.SetText(item.Description)
	if ages := item.AgeRange.String(); ages != "" {
		r.ages.SetText(fmt.Sprintf("%s %s", loc.GetText(KeyAges), ages))
	} else {
		r.ages.SetText("")
	}
}

// CreateRenderer implements fyne.Widget
func (r *contentRow) CreateRenderer() fyne.WidgetRenderer {
	text := container.NewVBox(r.title, r.description)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, r.icon, r.ages, text))
}
