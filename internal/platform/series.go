package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ytget/ytdlp/v2"

	"github.com/calmkids/calmkids/internal/model"
)

// Timeout constants
const (
	DefaultSeriesTimeout = 60 * time.Second
)

// URL parameters and templates
const (
	PlaylistParam           = "list"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
	SeriesTitleSuffix       = " Series"
	MinPrefixLength         = 10
)

// episodeLookup fetches the episodes of a playlist
type episodeLookup func(ctx context.Context, playlistID string) ([]*model.SeriesEpisode, error)

// SeriesExpander turns a video item that links to a hosted playlist into the
// list of its episodes
type SeriesExpander struct {
	timeout time.Duration
	lookup  episodeLookup
}

// NewSeriesExpander creates a new expander
func NewSeriesExpander() *SeriesExpander {
	return &SeriesExpander{
		timeout: DefaultSeriesTimeout,
		lookup:  ytdlpLookup,
	}
}

// ytdlpLookup lists playlist items with the ytdlp library
func ytdlpLookup(ctx context.Context, playlistID string) ([]*model.SeriesEpisode, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	episodes := make([]*model.SeriesEpisode, 0, len(items))
	for _, it := range items {
		episodes = append(episodes, &model.SeriesEpisode{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return episodes, nil
}

// SetTimeout sets the timeout for playlist lookups
func (e *SeriesExpander) SetTimeout(timeout time.Duration) {
	e.timeout = timeout
}

// IsSeriesURL reports whether fileURL points at a hosted playlist
func IsSeriesURL(fileURL string) bool {
	return PlaylistIDFromURL(fileURL) != ""
}

// PlaylistIDFromURL extracts the playlist id from a YouTube style URL
func PlaylistIDFromURL(fileURL string) string {
	u, err := url.Parse(strings.TrimSpace(fileURL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" && host != "music.youtube.com" && host != "youtu.be" {
		return ""
	}
	return u.Query().Get(PlaylistParam)
}

// Expand fetches the playlist behind the item's primary file
func (e *SeriesExpander) Expand(ctx context.Context, item *model.ContentItem) (*model.Series, error) {
	file, ok := item.PrimaryFile()
	if !ok {
		return nil, fmt.Errorf("content item %s has no files", item.ID)
	}

	playlistID := PlaylistIDFromURL(file.FileURL)
	if playlistID == "" {
		return nil, fmt.Errorf("not a playlist URL: %s", file.FileURL)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	episodes, err := e.lookup(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	series := model.NewSeries(playlistID, file.FileURL)
	for _, ep := range episodes {
		series.AddEpisode(ep)
	}
	series.Title = seriesTitle(item, series.Episodes)

	return series, nil
}

// seriesTitle prefers the item's own title, then the common prefix of the
// first two episodes
func seriesTitle(item *model.ContentItem, episodes []*model.SeriesEpisode) string {
	if t := item.DisplayTitle(); t != "" {
		return t
	}
	if len(episodes) == 0 {
		return ""
	}
	if len(episodes) > 1 {
		prefix := commonPrefix(episodes[0].Title, episodes[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + SeriesTitleSuffix
		}
	}
	return episodes[0].Title + SeriesTitleSuffix
}

// commonPrefix finds the common prefix between two strings, rune by rune
func commonPrefix(s1, s2 string) string {
	i := 0
	for i < len(s1) && i < len(s2) {
		_, n := utf8.DecodeRuneInString(s1[i:])
		if i+n > len(s2) || s1[i:i+n] != s2[i:i+n] {
			break
		}
		i += n
	}
	return s1[:i]
}
