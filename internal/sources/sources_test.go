package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cesargomez89/gameshelf/internal/config"
	"github.com/cesargomez89/gameshelf/internal/domain"
)

func TestSteamSource_FetchRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/IPlayerService/GetOwnedGames/v1/" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("steamid") != "765611" {
			t.Errorf("Unexpected steamid %s", r.URL.Query().Get("steamid"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"games":[
			{"appid":440,"name":"Team Fortress 2"},
			{"appid":620,"name":"Portal 2"}
		]}}`))
	}))
	defer srv.Close()

	src := NewSteamSource(srv.URL, "key")
	records, err := src.FetchRecords(context.Background(), "765611")
	if err != nil {
		t.Fatalf("FetchRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Source != domain.SourceSteam || first.ExternalID != "440" || first.Title != "Team Fortress 2" {
		t.Errorf("Unexpected record: %+v", first)
	}
	if first.Platform != domain.PlatformSteam || first.CoverURL == "" {
		t.Errorf("Expected platform and cover set, got %+v", first)
	}
}

func TestRetroSource_FetchRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/API_GetUserCompletedGames.php" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"GameID":10,"Title":"Chrono Trigger","ImageIcon":"/Images/1.png",
			 "ConsoleID":3,"ConsoleName":"SNES","NumAwarded":40,"MaxPossible":77}
		]`))
	}))
	defer srv.Close()

	src := NewRetroSource(srv.URL, "key")
	records, err := src.FetchRecords(context.Background(), "player1")
	if err != nil {
		t.Fatalf("FetchRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Source != domain.SourceRetro || rec.ExternalID != "10" {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.Platform != "ra-snes" || rec.SystemID != 3 {
		t.Errorf("Expected platform ra-snes and system 3, got %+v", rec)
	}
	if !rec.HasProgress || rec.Earned != 40 || rec.Total != 77 {
		t.Errorf("Expected progress carried, got %+v", rec)
	}
	if rec.CoverURL != "https://media.retroachievements.org/Images/1.png" {
		t.Errorf("Unexpected cover %s", rec.CoverURL)
	}
}

func TestConsolePlatform(t *testing.T) {
	tests := []struct {
		name string
		want domain.Platform
	}{
		{"SNES", "ra-snes"},
		{"SNES/Super Famicom", "ra-snes-super-famicom"},
		{"Game Boy Advance", "ra-game-boy-advance"},
		{"PlayStation 2", "ra-playstation-2"},
	}
	for _, tt := range tests {
		if got := consolePlatform(tt.name); got != tt.want {
			t.Errorf("consolePlatform(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if !consolePlatform(tt.name).Valid() {
			t.Errorf("Expected %q to be a valid platform", tt.name)
		}
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		SteamAPIURL: "https://api.steampowered.com",
		SteamAPIKey: "steam-key",
		RetroURL:    "https://retroachievements.org/API",
	}
	out := FromConfig(cfg)
	if _, ok := out[domain.SourceSteam]; !ok {
		t.Error("Expected steam source with key present")
	}
	if _, ok := out[domain.SourceRetro]; ok {
		t.Error("Expected no retro source without key")
	}
}
