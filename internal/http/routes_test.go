package httpapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/gameshelf/internal/domain"
	"github.com/cesargomez89/gameshelf/internal/logger"
	"github.com/cesargomez89/gameshelf/internal/resolver"
	"github.com/cesargomez89/gameshelf/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.DB, *resolver.Resolver) {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.Config{Level: "error", Format: "text"})
	res := resolver.New(db, resolver.Config{Logger: log})

	r := chi.NewRouter()
	NewHandler(db, res, log).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db, res
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestEnqueueSync(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/sync/steam", "application/json",
		strings.NewReader(`{"user_id":"user-a"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", resp.StatusCode)
	}

	var job domain.SyncJob
	decodeBody(t, resp, &job)
	if job.Status != domain.JobStatusQueued || job.Source != domain.SourceSteam {
		t.Errorf("Unexpected job: %+v", job)
	}

	// A second request while the job is queued returns the same job.
	resp, err = http.Post(srv.URL+"/api/sync/steam", "application/json",
		strings.NewReader(`{"user_id":"user-a"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 for duplicate, got %d", resp.StatusCode)
	}
	var dup domain.SyncJob
	decodeBody(t, resp, &dup)
	if dup.ID != job.ID {
		t.Errorf("Expected the in-flight job back, got %s vs %s", dup.ID, job.ID)
	}
}

func TestEnqueueSync_BadRequests(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/sync/megadrive", "application/json",
		strings.NewReader(`{"user_id":"user-a"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown source, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/sync/steam", "application/json",
		strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing user_id, got %d", resp.StatusCode)
	}
}

func TestGetJob(t *testing.T) {
	srv, db, _ := newTestServer(t)

	job := &domain.SyncJob{ID: "job-1", UserID: "user-a", Source: domain.SourceSteam, Status: domain.JobStatusQueued}
	if err := db.CreateSyncJob(job); err != nil {
		t.Fatalf("CreateSyncJob failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/jobs/job-1")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var got domain.SyncJob
	decodeBody(t, resp, &got)
	if got.ID != "job-1" {
		t.Errorf("Unexpected job: %+v", got)
	}

	resp, err = http.Get(srv.URL + "/api/jobs/missing")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for missing job, got %d", resp.StatusCode)
	}
}

func TestGetGameWithReleases(t *testing.T) {
	srv, _, res := newTestServer(t)

	created, err := res.ResolveOrCreate(context.Background(), resolver.Input{
		Source:     domain.SourceSteam,
		ExternalID: "1000",
		Title:      "Game 1",
		Platform:   domain.PlatformSteam,
	})
	if err != nil {
		t.Fatalf("ResolveOrCreate failed: %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/games/" + created.GameID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Game     domain.Game      `json:"game"`
		Releases []domain.Release `json:"releases"`
	}
	decodeBody(t, resp, &body)
	if body.Game.ID != created.GameID {
		t.Errorf("Unexpected game: %+v", body.Game)
	}
	if len(body.Releases) != 1 || body.Releases[0].ID != created.ReleaseID {
		t.Errorf("Unexpected releases: %+v", body.Releases)
	}
}

func TestMergeReleases(t *testing.T) {
	srv, _, res := newTestServer(t)

	ctx := context.Background()
	winner, err := res.ResolveOrCreate(ctx, resolver.Input{
		Source: domain.SourceSteam, ExternalID: "1000", Title: "Game 1", Platform: domain.PlatformSteam,
	})
	if err != nil {
		t.Fatalf("ResolveOrCreate failed: %v", err)
	}
	loser, err := res.ResolveOrCreate(ctx, resolver.Input{
		Source: domain.SourcePSN, ExternalID: "NPWR-1", Title: "Game 1", Platform: domain.PlatformPSN,
	})
	if err != nil {
		t.Fatalf("ResolveOrCreate failed: %v", err)
	}

	payload := `{"winner":"` + winner.ReleaseID + `","loser":"` + loser.ReleaseID + `"}`
	resp, err := http.Post(srv.URL+"/api/admin/merge", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/games/" + winner.GameID)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var body struct {
		Releases []domain.Release `json:"releases"`
	}
	decodeBody(t, resp, &body)
	if len(body.Releases) != 1 || body.Releases[0].ID != winner.ReleaseID {
		t.Errorf("Expected only the winner release to remain, got %+v", body.Releases)
	}
}

func TestMergeReleases_BadRequest(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/admin/merge", "application/json",
		strings.NewReader(`{"winner":"a"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestGetLibrary_EmptyIsArray(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/users/nobody/library")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var entries []store.LibraryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Expected a JSON array, got decode error: %v", err)
	}
	if entries == nil {
		t.Error("Expected empty array, got null")
	}
}
