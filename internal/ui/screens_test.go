package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"go.uber.org/zap/zaptest"

	"github.com/calmkids/calmkids/internal/api"
	"github.com/calmkids/calmkids/internal/auth"
	"github.com/calmkids/calmkids/internal/config"
	"github.com/calmkids/calmkids/internal/model"
	"github.com/calmkids/calmkids/internal/render"
	"github.com/calmkids/calmkids/internal/state"
)

// fakeBackend records calls instead of talking to a server
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	items   []model.ContentItem
	profile *model.UserProfile
	err     error
	message string
	baseURL string
	called  chan string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{called: make(chan string, 16), message: "ok"}
}

func (f *fakeBackend) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
	f.called <- op
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) GetProfile(context.Context) (*model.UserProfile, error) {
	f.record(api.OpGetProfile)
	return f.profile, f.err
}

func (f *fakeBackend) ListContent(_ context.Context, endpoint string) ([]model.ContentItem, error) {
	f.record(api.OpListContent)
	return f.items, f.err
}

func (f *fakeBackend) Register(context.Context, auth.RegisterRequest) (string, error) {
	f.record(api.OpRegister)
	return f.message, f.err
}

func (f *fakeBackend) ForgotPassword(context.Context, string) (string, error) {
	f.record(api.OpForgotPassword)
	return f.message, f.err
}

func (f *fakeBackend) ResetPassword(context.Context, string, string, string, string) (string, error) {
	f.record(api.OpResetPassword)
	return f.message, f.err
}

func (f *fakeBackend) SetBaseURL(u string) {
	f.mu.Lock()
	f.baseURL = u
	f.mu.Unlock()
}

// fakeDownloader records dispatched URLs
type fakeDownloader struct {
	mu         sync.Mutex
	tasks      []*model.DownloadTask
	dispatched chan string
	dir        string
}

func newFakeDownloader() *fakeDownloader {
	return &fakeDownloader{dispatched: make(chan string, 4)}
}

func (f *fakeDownloader) SetUpdateCallback(func(*model.DownloadTask)) {}

func (f *fakeDownloader) Dispatch(_ context.Context, fileURL string) *model.DownloadTask {
	task := &model.DownloadTask{ID: "task-" + fileURL, URL: fileURL, Status: model.TaskStatusCompleted}
	f.mu.Lock()
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()
	f.dispatched <- fileURL
	return task
}

func (f *fakeDownloader) GetTask(id string) (*model.DownloadTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, task := range f.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return nil, false
}

func (f *fakeDownloader) GetAllTasks() []*model.DownloadTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.DownloadTask(nil), f.tasks...)
}

func (f *fakeDownloader) RemoveTask(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, task := range f.tasks {
		if task.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return errors.New("task not found")
}

func (f *fakeDownloader) SetDocumentsDirectory(dir string) {
	f.mu.Lock()
	f.dir = dir
	f.mu.Unlock()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestErrorText(t *testing.T) {
	loc := NewLocalization()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"unauthenticated", api.ErrUnauthenticated, "Please sign in again."},
		{"short password", auth.ErrPasswordTooShort, "Password must be at least 8 characters"},
		{"mismatch", auth.ErrPasswordMismatch, "Passwords do not match"},
		{"fetch error", &api.FetchError{Op: api.OpListContent, StatusCode: 500, Message: "database down"}, "database down"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.err, loc); got != tt.expected {
				t.Errorf("errorText() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestLibraryScreen_Apply(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	unauthenticated := 0
	ls := NewLibraryScreen(api.EndpointPDFs, newFakeBackend(), loc, zaptest.NewLogger(t), nil, func() { unauthenticated++ })
	defer ls.Close()

	if ls.Title() != "Worksheets" {
		t.Errorf("Expected localized title, got %q", ls.Title())
	}

	items := []model.ContentItem{{ID: "a", Type: model.ContentTypePDF, Heading: "Anger Thermometer"}, {ID: "b", Type: model.ContentTypePDF, Title: "Calm Corner"}}
	ls.apply(state.Snapshot[[]model.ContentItem]{Value: items})
	if ls.list.Length() != 2 {
		t.Errorf("Expected 2 rows, got %d", ls.list.Length())
	}
	if ls.statusText.Visible() {
		t.Error("Expected status text hidden when items are shown")
	}

	ls.apply(state.Snapshot[[]model.ContentItem]{Err: &api.FetchError{Op: api.OpListContent, StatusCode: 404, Message: "Not Found"}})
	if ls.list.Length() != 0 {
		t.Errorf("Expected no rows after a failure, got %d", ls.list.Length())
	}
	if !strings.Contains(ls.statusText.Text, "Not Found") || !ls.statusText.Visible() {
		t.Errorf("Expected inline fetch error, got %q", ls.statusText.Text)
	}
	if unauthenticated != 0 {
		t.Error("Fetch failure must not raise the sign-in alert")
	}

	// A reload after a failure shows progress, not the stale error
	ls.apply(state.Snapshot[[]model.ContentItem]{Loading: true, Err: &api.FetchError{Op: api.OpListContent, StatusCode: 500, Message: "Server Error"}})
	if ls.statusText.Text != loc.GetText(KeyLoading) {
		t.Errorf("Expected loading notice while reloading, got %q", ls.statusText.Text)
	}

	ls.apply(state.Snapshot[[]model.ContentItem]{Err: api.ErrUnauthenticated})
	if unauthenticated != 1 {
		t.Errorf("Expected one sign-in alert, got %d", unauthenticated)
	}

	ls.apply(state.Snapshot[[]model.ContentItem]{})
	if ls.statusText.Text != loc.GetText(KeyNoContent) {
		t.Errorf("Expected empty notice, got %q", ls.statusText.Text)
	}
}

func TestLibraryScreen_ReloadFetches(t *testing.T) {
	test.NewApp()
	backend := newFakeBackend()
	backend.items = []model.ContentItem{{ID: "v1", Type: model.ContentTypeVideo, Title: "Breathing"}}

	ls := NewLibraryScreen(api.EndpointVideos, backend, NewLocalization(), zaptest.NewLogger(t), nil, nil)
	defer ls.Close()

	ls.Reload()
	select {
	case op := <-backend.called:
		if op != api.OpListContent {
			t.Errorf("Expected list content call, got %s", op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Reload did not fetch")
	}
	waitFor(t, "items", func() bool { return len(ls.loader.Snapshot().Value) == 1 })
}

func TestViewerScreen_Directives(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	tests := []struct {
		name     string
		platform render.Platform
		item     model.ContentItem
		expected render.Kind
	}{
		{"web pdf", render.PlatformWeb, model.ContentItem{Type: model.ContentTypePDF, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/a.pdf"}}}, render.KindEmbed},
		{"native video", render.PlatformNative, model.ContentItem{Type: model.ContentTypeVideo, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/a.mp4"}}}, render.KindVideo},
		{"native pdf", render.PlatformNative, model.ContentItem{Type: model.ContentTypePDF, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/a.pdf"}}}, render.KindDownloadPanel},
		{"native text", render.PlatformNative, model.ContentItem{Type: model.ContentTypeText, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/a.txt"}}}, render.KindDownloadPanel},
		{"native image without file", render.PlatformNative, model.ContentItem{Type: model.ContentTypeImage}, render.KindImage},
		{"native audio", render.PlatformNative, model.ContentItem{Type: "audio", Files: []model.ContentFile{{FileURL: "https://cdn.example.com/a.mp3"}}}, render.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services := Services{Platform: tt.platform, Logger: zaptest.NewLogger(t)}
			v := NewViewerScreen(tt.item, services, loc, nil)
			defer v.Close()

			if v.Directive().Kind != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, v.Directive().Kind)
			}
			if v.Content() == nil {
				t.Error("Expected viewer content")
			}
		})
	}
}

func TestViewerScreen_DownloadDispatches(t *testing.T) {
	test.NewApp()
	downloads := newFakeDownloader()
	item := model.ContentItem{Type: model.ContentTypePDF, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/worksheet.pdf"}}}

	v := NewViewerScreen(item, Services{Platform: render.PlatformNative, Downloads: downloads}, NewLocalization(), nil)
	v.download(v.Directive().URL)
	// Closing the viewer does not cancel the download
	v.Close()

	select {
	case got := <-downloads.dispatched:
		if got != "https://cdn.example.com/worksheet.pdf" {
			t.Errorf("Unexpected dispatched URL %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("download was not dispatched")
	}
}

type fakeOpener struct {
	mu   sync.Mutex
	urls []*url.URL
}

func (f *fakeOpener) OpenURL(u *url.URL) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, u)
	return nil
}

func (f *fakeOpener) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

func TestViewerScreen_WebOpenGoesThroughDispatcher(t *testing.T) {
	test.NewApp()
	downloads := newFakeDownloader()
	opener := &fakeOpener{}
	item := model.ContentItem{Type: model.ContentTypeVideo, Files: []model.ContentFile{{FileURL: "https://cdn.example.com/breathing.mp4"}}}

	v := NewViewerScreen(item, Services{Platform: render.PlatformWeb, Downloads: downloads, Opener: opener}, NewLocalization(), nil)
	defer v.Close()
	if v.Directive().Kind != render.KindEmbed {
		t.Fatalf("Expected embed directive, got %s", v.Directive().Kind)
	}

	test.Tap(v.openBtn)

	select {
	case got := <-downloads.dispatched:
		if got != "https://cdn.example.com/breathing.mp4" {
			t.Errorf("Unexpected dispatched URL %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("open was not dispatched")
	}
	if opener.count() != 0 {
		t.Error("Expected the dispatcher to open the URL, not the viewer")
	}
}

func TestAccountForms_ResetValidatesLocally(t *testing.T) {
	test.NewApp()
	backend := newFakeBackend()
	af := NewAccountForms(backend, NewLocalization(), NewMobileUI(), zaptest.NewLogger(t))

	tests := []struct {
		name, password, confirm, expected string
	}{
		{"too short", "short", "short", "Password must be at least 8 characters"},
		{"mismatch", "longenough1", "different", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			af.ShowReset("reset-token", "kid@example.com")
			af.resetPass.SetText(tt.password)
			af.resetConfirm.SetText(tt.confirm)
			af.SubmitReset()

			if !strings.Contains(af.resetResult.label.Text, tt.expected) {
				t.Errorf("Expected %q, got %q", tt.expected, af.resetResult.label.Text)
			}
		})
	}

	if n := backend.callCount(); n != 0 {
		t.Errorf("Expected no network calls, got %d", n)
	}
}

func TestAccountForms_ResetSubmits(t *testing.T) {
	test.NewApp()
	backend := newFakeBackend()
	backend.message = "Password reset successful"
	af := NewAccountForms(backend, NewLocalization(), NewMobileUI(), zaptest.NewLogger(t))

	af.ShowReset("reset-token", "kid@example.com")
	af.resetPass.SetText("longenough1")
	af.resetConfirm.SetText("longenough1")
	af.SubmitReset()

	select {
	case op := <-backend.called:
		if op != api.OpResetPassword {
			t.Errorf("Expected reset call, got %s", op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reset was not submitted")
	}
	waitFor(t, "success message", func() bool { return af.resetResult.label.Text == "Password reset successful" })
}

func TestAccountForms_ForgotAndRegisterValidation(t *testing.T) {
	test.NewApp()
	backend := newFakeBackend()
	af := NewAccountForms(backend, NewLocalization(), NewMobileUI(), zaptest.NewLogger(t))

	af.forgotEmail.SetText("not-an-email")
	af.SubmitForgot()
	if !strings.Contains(af.forgotResult.label.Text, "Email address is not valid") {
		t.Errorf("Unexpected forgot result %q", af.forgotResult.label.Text)
	}

	af.firstName.SetText("Ana")
	af.SubmitRegister()
	if !strings.Contains(af.regResult.label.Text, "First and last name are required") {
		t.Errorf("Unexpected register result %q", af.regResult.label.Text)
	}

	if n := backend.callCount(); n != 0 {
		t.Errorf("Expected no network calls, got %d", n)
	}
}

func TestProfileScreen_Apply(t *testing.T) {
	test.NewApp()
	unauthenticated := 0
	ps := NewProfileScreen(newFakeBackend(), NewLocalization(), zaptest.NewLogger(t), func() { unauthenticated++ })
	defer ps.Close()

	ps.apply(state.Snapshot[*model.UserProfile]{Value: &model.UserProfile{Name: "Ana", Email: "ana@example.com", Age: 7}})
	if ps.nameLabel.Text != "Ana" || ps.ageLabel.Text != "7" || ps.gender.Text != DashPlaceholder {
		t.Errorf("Unexpected profile labels %q %q %q", ps.nameLabel.Text, ps.ageLabel.Text, ps.gender.Text)
	}

	ps.apply(state.Snapshot[*model.UserProfile]{Loading: true, Err: api.ErrUnauthenticated})
	if unauthenticated != 0 || ps.statusText.Text != NewLocalization().GetText(KeyLoading) {
		t.Errorf("Expected loading notice while reloading, got %q", ps.statusText.Text)
	}

	ps.apply(state.Snapshot[*model.UserProfile]{Err: api.ErrUnauthenticated})
	if unauthenticated != 1 || ps.nameLabel.Text != DashPlaceholder {
		t.Errorf("Expected cleared profile and sign-in alert, got %q / %d", ps.nameLabel.Text, unauthenticated)
	}
}

func TestDownloadsScreen_Refresh(t *testing.T) {
	test.NewApp()
	downloads := newFakeDownloader()
	ds := NewDownloadsScreen(Services{Downloads: downloads}, NewLocalization())

	ds.Refresh()
	if !ds.empty.Visible() || ds.list.Length() != 0 {
		t.Error("Expected empty downloads list")
	}

	downloads.Dispatch(context.Background(), "https://cdn.example.com/a.pdf")
	ds.Refresh()
	if ds.empty.Visible() || ds.list.Length() != 1 {
		t.Errorf("Expected one download, got %d", ds.list.Length())
	}

	ds.onRemove("task-https://cdn.example.com/a.pdf")
	if ds.list.Length() != 0 {
		t.Errorf("Expected download removed, got %d", ds.list.Length())
	}
}

func TestSettingsDialog_Save(t *testing.T) {
	app := test.NewApp()
	w := app.NewWindow("test")
	settings := config.NewSettings(app)
	tokens := auth.NewMemoryTokenStore("")

	saved := 0
	sd := NewSettingsDialog(settings, tokens, NewLocalization(), w, func() { saved++ })
	sd.loadCurrentSettings()

	sd.apiURLEntry.SetText("https://api.calmkids.app/api/")
	sd.docsDirEntry.SetText("/data/calmkids")
	sd.tokenEntry.SetText(" new-token ")
	sd.languageSelect.SetSelected("Español")
	sd.save()

	if settings.GetAPIURL() != "https://api.calmkids.app/api" {
		t.Errorf("Unexpected API URL %q", settings.GetAPIURL())
	}
	if settings.GetDocumentsDirectory() != "/data/calmkids" {
		t.Errorf("Unexpected documents dir %q", settings.GetDocumentsDirectory())
	}
	if token, ok := tokens.Token(); !ok || token != "new-token" {
		t.Errorf("Unexpected token %q", token)
	}
	if settings.GetLanguage() != LangSpanish {
		t.Errorf("Unexpected language %q", settings.GetLanguage())
	}
	if saved != 1 {
		t.Errorf("Expected saved callback once, got %d", saved)
	}

	sd.tokenEntry.SetText("")
	sd.save()
	if _, ok := tokens.Token(); ok {
		t.Error("Expected empty token entry to sign out")
	}
}
