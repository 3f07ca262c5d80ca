package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/config"
	"github.com/calmkids/calmkids/internal/download"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/render"
)

// Backend is the part of the API client the screens use
type Backend interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	ListContent(ctx context.Context, endpoint string) ([]model.ContentItem, error)
	Register(ctx context.Context, req auth.RegisterRequest) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, email, password, confirm string) (string, error)
	SetBaseURL(baseURL string)
}

// SeriesSource expands playlist videos into episodes
type SeriesSource interface {
	Expand(ctx context.Context, item *model.ContentItem) (*model.Series, error)
}

// Services bundles everything the screens talk to
type Services struct {
	API       Backend
	Tokens    auth.TokenStore
	Downloads download.Downloader
	Sharer    download.Sharer
	Opener    download.URLOpener
	Series    SeriesSource
	Settings  *config.Settings
	Platform  render.Platform
	Logger    *zap.Logger
}

// errorText maps an error to localized text for dialogs and inline labels
func errorText(err error, loc *Localization) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnauthenticated):
		return loc.GetText(KeySignInAgain)
	case errors.Is(err, auth.ErrPasswordTooShort):
		return loc.GetText(KeyPasswordTooShort)
	case errors.Is(err, auth.ErrPasswordMismatch):
		return loc.GetText(KeyPasswordMismatch)
	case errors.Is(err, auth.ErrEmailRequired):
		return loc.GetText(KeyEmailRequired)
	case errors.Is(err, auth.ErrEmailInvalid):
		return loc.GetText(KeyEmailInvalid)
	case errors.Is(err, auth.ErrNameRequired):
		return loc.GetText(KeyNameRequired)
	case errors.Is(err, auth.ErrAgeInvalid):
		return loc.GetText(KeyAgeInvalid)
	case errors.Is(err, auth.ErrContactInvalid):
		return loc.GetText(KeyContactInvalid)
	case errors.Is(err, auth.ErrTokenRequired):
		return loc.GetText(KeyTokenRequired)
	default:
		return api.UserMessage(err)
	}
}
