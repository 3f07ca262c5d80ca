package ui

import (
	"context"
	"errors"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/logging"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/state"
)

// ProfileScreen shows the signed-in child's profile
type ProfileScreen struct {
	loader       *state.Loader[*model.UserProfile]
	localization *Localization
	logger       *zap.Logger

	avatar     *canvas.Image
	avatarURL  string
	nameLabel  *widget.Label
	emailLabel *widget.Label
	ageLabel   *widget.Label
	gender     *widget.Label
	statusText *widget.Label
	content    fyne.CanvasObject

	onUnauthenticated func()
}

// NewProfileScreen creates the profile screen
func NewProfileScreen(backend Backend, loc *Localization, logger *zap.Logger, onUnauthenticated func()) *ProfileScreen {
	logger = logging.OrNop(logger).With(zap.String("screen", "profile"))
	ps := &ProfileScreen{
		localization:      loc,
		logger:            logger,
		onUnauthenticated: onUnauthenticated,
	}
	ps.loader = state.NewLoader(func(ctx context.Context) (*model.UserProfile, error) {
		return backend.GetProfile(ctx)
	}, logger)
	ps.loader.SetChangeCallback(func(snap state.Snapshot[*model.UserProfile]) {
		fyne.Do(func() { ps.apply(snap) })
	})

	ps.createUI()
	return ps
}

// Content returns the screen's root object
func (ps *ProfileScreen) Content() fyne.CanvasObject {
	return ps.content
}

// Reload fetches the profile in the background
func (ps *ProfileScreen) Reload() {
	go ps.loader.Load()
}

// Close cancels any load in flight
func (ps *ProfileScreen) Close() {
	ps.loader.Close()
}

func (ps *ProfileScreen) createUI() {
	ps.avatar = canvas.NewImageFromResource(theme.AccountIcon())
	ps.avatar.FillMode = canvas.ImageFillContain
	ps.avatar.SetMinSize(fyne.NewSize(AvatarSize, AvatarSize))

	ps.nameLabel = widget.NewLabel(DashPlaceholder)
	ps.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	ps.nameLabel.Alignment = fyne.TextAlignCenter
	ps.emailLabel = widget.NewLabel(DashPlaceholder)
	ps.ageLabel = widget.NewLabel(DashPlaceholder)
	ps.gender = widget.NewLabel(DashPlaceholder)

	ps.statusText = widget.NewLabel("")
	ps.statusText.Wrapping = fyne.TextWrapWord
	ps.statusText.Hide()

	details := widget.NewForm(
		widget.NewFormItem(ps.localization.GetText(KeyEmail), ps.emailLabel),
		widget.NewFormItem(ps.localization.GetText(KeyAge), ps.ageLabel),
		widget.NewFormItem(ps.localization.GetText(KeyGender), ps.gender),
	)

	reload := widget.NewButtonWithIcon(ps.localization.GetText(KeyReload), theme.ViewRefreshIcon(), ps.Reload)
	reload.Importance = widget.LowImportance

	ps.content = container.NewVBox(
		container.NewCenter(ps.avatar),
		ps.nameLabel,
		ps.statusText,
		details,
		container.NewCenter(reload),
	)
}

// apply renders a loader snapshot; runs on the UI goroutine
func (ps *ProfileScreen) apply(snap state.Snapshot[*model.UserProfile]) {
	switch {
	case snap.Loading:
		ps.statusText.SetText(ps.localization.GetText(KeyLoading))
		ps.statusText.Show()
	case snap.Err != nil:
		ps.statusText.SetText(IconError + " " + errorText(snap.Err, ps.localization))
		ps.statusText.Show()
		if errors.Is(snap.Err, api.ErrUnauthenticated) && ps.onUnauthenticated != nil {
			ps.onUnauthenticated()
		}
	default:
		ps.statusText.Hide()
	}

	p := snap.Value
	if p == nil {
		ps.nameLabel.SetText(DashPlaceholder)
		ps.emailLabel.SetText(DashPlaceholder)
		ps.ageLabel.SetText(DashPlaceholder)
		ps.gender.SetText(DashPlaceholder)
		return
	}

	ps.nameLabel.SetText(orDash(p.Name))
	ps.emailLabel.SetText(orDash(p.Email))
	if p.Age > 0 {
		ps.ageLabel.SetText(strconv.Itoa(p.Age))
	} else {
		ps.ageLabel.SetText(DashPlaceholder)
	}
	ps.gender.SetText(orDash(p.Gender))
	ps.loadAvatar(p.Avatar)
}

// loadAvatar fetches the avatar once per URL
func (ps *ProfileScreen) loadAvatar(raw string) {
	if raw == "" || raw == ps.avatarURL {
		return
	}
	ps.avatarURL = raw
	go func() {
		res, err := fyne.LoadResourceFromURLString(raw)
		if err != nil {
			ps.logger.Warn("avatar load failed", zap.String("url", raw), zap.Error(err))
			return
		}
		fyne.Do(func() {
			ps.avatar.Resource = res
			ps.avatar.Refresh()
		})
	}()
}

func orDash(s string) string {
	if s == "" {
		return DashPlaceholder
	}
	return s
}
