package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newCatalogFixture starts fake token and API servers and returns a service pointed at them.
func newCatalogFixture(t *testing.T, apiHandler http.HandlerFunc) (*SpotifyService, *atomic.Int32) {
	t.Helper()

	var tokenRequests atomic.Int32

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenRequests.Add(1)

		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if got := r.PostFormValue("grant_type"); got != "client_credentials" && got != "" {
			t.Errorf("expected client_credentials grant, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test_token","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
		"token_url":     tokenSrv.URL,
		"base_url":      apiSrv.URL,
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	return srv, &tokenRequests
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("With Valid Credentials", func(t *testing.T) {
		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if srv.Name() != "Spotify" {
			t.Errorf("expected service name 'Spotify', got %s", srv.Name())
		}
	})

	t.Run("Missing Client ID", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
		if err == nil {
			t.Error("expected error for missing client_id")
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "c"})
		if err == nil {
			t.Error("expected error for missing client_secret")
		}
	})
}

func TestSearchTracks(t *testing.T) {
	searchBody := `{
		"tracks": {
			"total": 2,
			"items": [
				{"id": "t1", "name": "Imagine", "artists": [{"id": "a1", "name": "John Lennon"}]},
				{"id": "t2", "name": "Imagine Remaster", "artists": [{"id": "a1", "name": "John Lennon"}, {"id": "a2", "name": "The Plastic Ono Band"}]}
			]
		}
	}`

	t.Run("Parses Results", func(t *testing.T) {
		srv, _ := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/search") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("type"); got != "track" {
				t.Errorf("expected type=track, got %q", got)
			}
			if got := r.URL.Query().Get("q"); got != "Imagine" {
				t.Errorf("expected q=Imagine, got %q", got)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test_token" {
				t.Errorf("expected bearer token auth, got %q", auth)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(searchBody))
		})

		result, err := srv.SearchTracks(context.Background(), "Imagine")
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(result.Tracks.Items) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(result.Tracks.Items))
		}
		if result.Tracks.Items[0].Name != "Imagine" {
			t.Errorf("expected first track Imagine, got %s", result.Tracks.Items[0].Name)
		}
	})

	t.Run("Token Exchanged Lazily And Cached", func(t *testing.T) {
		srv, tokenRequests := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(searchBody))
		})

		if got := tokenRequests.Load(); got != 0 {
			t.Fatalf("expected no token exchange before first search, got %d", got)
		}

		for i := 0; i < 3; i++ {
			if _, err := srv.SearchTracks(context.Background(), "Imagine"); err != nil {
				t.Fatalf("search %d failed: %v", i, err)
			}
		}

		if got := tokenRequests.Load(); got != 1 {
			t.Errorf("expected exactly one token exchange, got %d", got)
		}
	})

	t.Run("Empty Query Short Circuits", func(t *testing.T) {
		srv, tokenRequests := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("upstream should not be called for empty query")
		})

		result, err := srv.SearchTracks(context.Background(), "")
		if err != nil {
			t.Fatalf("expected no error for empty query, got %v", err)
		}
		if len(result.Tracks.Items) != 0 {
			t.Errorf("expected empty track list, got %d items", len(result.Tracks.Items))
		}
		if got := tokenRequests.Load(); got != 0 {
			t.Errorf("expected no token exchange, got %d", got)
		}
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		srv, _ := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})

		if _, err := srv.SearchTracks(context.Background(), "Imagine"); err == nil {
			t.Error("expected error for non-success upstream status")
		}
	})

	t.Run("Token Exchange Failure", func(t *testing.T) {
		tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
		}))
		defer tokenSrv.Close()

		srv, err := NewSpotifyService(map[string]string{
			"client_id":     "bad",
			"client_secret": "bad",
			"token_url":     tokenSrv.URL,
			"base_url":      "http://127.0.0.1:0",
		})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		if _, err := srv.SearchTracks(context.Background(), "Imagine"); err == nil {
			t.Error("expected error when token exchange fails")
		}
	})

	t.Run("Raw Passthrough Is Verbatim", func(t *testing.T) {
		srv, _ := newCatalogFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(searchBody))
		})

		raw, err := srv.SearchTracksRaw(context.Background(), "Imagine")
		if err != nil {
			t.Fatalf("raw search failed: %v", err)
		}
		if string(raw) != searchBody {
			t.Error("raw body should match upstream response byte for byte")
		}

		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Errorf("raw body should be valid JSON: %v", err)
		}
	})
}

func TestDisplayTitle(t *testing.T) {
	tc := []struct {
		name  string
		track Track
		want  string
	}{
		{
			name:  "single artist",
			track: Track{Name: "Imagine", Artists: []Artist{{Name: "John Lennon"}}},
			want:  "Imagine — John Lennon",
		},
		{
			name: "multiple artists",
			track: Track{Name: "Under Pressure", Artists: []Artist{
				{Name: "Queen"}, {Name: "David Bowie"},
			}},
			want: "Under Pressure — Queen, David Bowie",
		},
		{
			name:  "no artists",
			track: Track{Name: "Untitled"},
			want:  "Untitled",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %v, want %v", got, tt.want)
			}
		})
	}
}
