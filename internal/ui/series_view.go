package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/state"
)

// SeriesView lists the episodes of a video that links to a playlist
type SeriesView struct {
	loader       *state.Loader[*model.Series]
	localization *Localization
	onPlay       func(url string)

	series   *model.Series
	header   *widget.Label
	status   *widget.Label
	episodes *widget.List
	content  fyne.CanvasObject
}

// NewSeriesView creates the episode list for item. onPlay receives the
// episode URL when an episode is tapped.
func NewSeriesView(item model.ContentItem, services Services, loc *Localization, onPlay func(url string)) *SeriesView {
	sv := &SeriesView{
		localization: loc,
		onPlay:       onPlay,
	}
	sv.loader = state.NewLoader(func(ctx context.Context) (*model.Series, error) {
		return services.Series.Expand(ctx, &item)
	}, logging.OrNop(services.Logger))
	sv.loader.SetChangeCallback(func(snap state.Snapshot[*model.Series]) {
		fyne.Do(func() { sv.apply(snap) })
	})

	sv.createUI()
	return sv
}

// Content returns the view's root object
func (sv *SeriesView) Content() fyne.CanvasObject {
	return sv.content
}

// Reload expands the playlist in the background
func (sv *SeriesView) Reload() {
	go sv.loader.Load()
}

// Close cancels a running expansion
func (sv *SeriesView) Close() {
	sv.loader.Close()
}

func (sv *SeriesView) createUI() {
	sv.header = widget.NewLabel(IconSeries + " " + sv.localization.GetText(KeyEpisodes))
	sv.header.TextStyle = fyne.TextStyle{Bold: true}

	sv.status = widget.NewLabel("")
	sv.status.Wrapping = fyne.TextWrapWord
	sv.status.Hide()

	sv.episodes = widget.NewList(
		func() int { return sv.episodeCount() },
		func() fyne.CanvasObject {
			title := widget.NewLabel("")
			title.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, widget.NewIcon(theme.MediaPlayIcon()), nil, title)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= sv.episodeCount() {
				return
			}
			ep := sv.series.Episodes[id]
			label := obj.(*fyne.Container).Objects[0].(*widget.Label)
			label.SetText(fmt.Sprintf("%d. %s", id+1, ep.Title))
		},
	)
	sv.episodes.OnSelected = func(id widget.ListItemID) {
		sv.episodes.UnselectAll()
		if id < sv.episodeCount() && sv.onPlay != nil {
			sv.onPlay(sv.series.Episodes[id].URL)
		}
	}

	sv.content = container.NewBorder(container.NewVBox(sv.header, sv.status), nil, nil, nil, sv.episodes)
}

func (sv *SeriesView) episodeCount() int {
	if sv.series == nil {
		return 0
	}
	return sv.series.EpisodeCount()
}

// apply renders a loader snapshot; runs on the UI goroutine
func (sv *SeriesView) apply(snap state.Snapshot[*model.Series]) {
	sv.series = snap.Value

	switch {
	case snap.Err != nil:
		sv.status.SetText(IconError + " " + errorText(snap.Err, sv.localization))
		sv.status.Show()
	case snap.Loading:
		sv.status.SetText(sv.localization.GetText(KeyLoading))
		sv.status.Show()
	default:
		sv.status.Hide()
		if sv.series != nil && sv.series.Title != "" {
			sv.header.SetText(fmt.Sprintf("%s %s (%d)", IconSeries, sv.series.Title, sv.series.EpisodeCount()))
		}
	}

	sv.episodes.Refresh()
}
