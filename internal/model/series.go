package model

import "time"

// SeriesEpisode is one video of a hosted playlist
type SeriesEpisode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Series is a video content item expanded into its playlist episodes
type Series struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	SourceURL string           `json:"source_url"`
	Episodes  []*SeriesEpisode `json:"episodes"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// NewSeries creates an empty series for the playlist at url
func NewSeries(id, url string) *Series {
	return &Series{
		ID:        id,
		SourceURL: url,
		Episodes:  make([]*SeriesEpisode, 0),
		FetchedAt: time.Now(),
	}
}

// AddEpisode appends an episode
func (s *Series) AddEpisode(ep *SeriesEpisode) {
	s.Episodes = append(s.Episodes, ep)
}

// EpisodeCount returns the number of episodes
func (s *Series) EpisodeCount() int {
	return len(s.Episodes)
}
