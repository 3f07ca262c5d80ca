package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/calmkids/calmkids/internal/model"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/childauth/getprofile", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer cli-token" {
			http.Error(w, `{"message":"bad token"}`, http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Ana","email":"ana@example.com","age":7}`))
	})
	r.Get("/api/child/content/{kind}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"content":[{"_id":"1","type":"pdf","heading":"Anger Thermometer","files":[]}]}`))
	})
	r.Get("/files/missing.pdf", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	if code != exitUsage || !strings.Contains(stderr, "usage: calmkids") {
		t.Errorf("Expected usage, got %d %q", code, stderr)
	}

	code, _, _ = runCLI(t, "bogus")
	if code != exitUsage {
		t.Errorf("Expected usage exit for unknown command, got %d", code)
	}

	code, _, _ = runCLI(t, "content")
	if code != exitUsage {
		t.Errorf("Expected usage exit for missing endpoint, got %d", code)
	}
}

func TestRun_Profile(t *testing.T) {
	srv := newBackend(t)

	code, stdout, stderr := runCLI(t, "-api", srv.URL+"/api", "-token", "cli-token", "profile")
	if code != exitOK {
		t.Fatalf("Expected success, got %d: %s", code, stderr)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(stdout), &profile); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if profile.Name != "Ana" || profile.Age != 7 {
		t.Errorf("Unexpected profile %+v", profile)
	}
}

func TestRun_ProfileWithoutToken(t *testing.T) {
	srv := newBackend(t)
	t.Setenv("CALMKIDS_TOKEN", "")

	code, _, stderr := runCLI(t, "-api", srv.URL+"/api", "profile")
	if code != exitUnauthenticated {
		t.Errorf("Expected unauthenticated exit, got %d", code)
	}
	if !strings.Contains(stderr, "sign in") {
		t.Errorf("Expected sign-in message, got %q", stderr)
	}
}

func TestRun_TokenFromEnv(t *testing.T) {
	srv := newBackend(t)
	t.Setenv("CALMKIDS_TOKEN", "cli-token")
	t.Setenv("CALMKIDS_API_URL", srv.URL+"/api")

	if code, _, stderr := runCLI(t, "profile"); code != exitOK {
		t.Errorf("Expected success, got %d: %s", code, stderr)
	}
}

func TestRun_Content(t *testing.T) {
	srv := newBackend(t)

	code, stdout, stderr := runCLI(t, "-api", srv.URL+"/api", "-token", "cli-token", "content", "/child/content/pdfs")
	if code != exitOK {
		t.Fatalf("Expected success, got %d: %s", code, stderr)
	}

	var items []model.ContentItem
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if len(items) != 1 || items[0].Heading != "Anger Thermometer" {
		t.Errorf("Unexpected items %+v", items)
	}
}

func TestRun_DownloadNotFound(t *testing.T) {
	srv := newBackend(t)
	dir := t.TempDir()

	code, stdout, _ := runCLI(t, "-dir", dir, "download", srv.URL+"/files/missing.pdf")
	if code != exitFailure {
		t.Errorf("Expected failure exit, got %d", code)
	}
	if !strings.HasPrefix(stdout, string(model.TaskStatusError)) {
		t.Errorf("Expected error status line, got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.pdf")); err != nil {
		t.Errorf("Expected response body on disk: %v", err)
	}
}
