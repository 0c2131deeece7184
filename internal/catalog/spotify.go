// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/barboracab/hangthedj/internal/shared"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	emptySearchBody = `{"tracks":{"items":[],"total":0}}`
)

// SpotifyService implements [Service] for the Spotify Web API.
//
// Authentication uses the OAuth2 client credentials grant via
// [clientcredentials.Config]: the first request triggers a blocking token
// exchange, and the resulting bearer token is cached and refreshed by the
// token source under its own lock, so concurrent credential-less requests
// share a single exchange.
type SpotifyService struct {
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify catalog service with the given credentials.
//
// Recognized keys: client_id, client_secret, and optional token_url / base_url
// overrides for tests.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	tokenURL := credentials["token_url"]
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	baseURL := credentials["base_url"]
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &SpotifyService{
		httpClient: config.Client(context.Background()),
		baseURL:    baseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Spotify API and returns the raw body.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	return body, nil
}

// SearchTracksRaw returns Spotify's raw track search response for the query.
//
// An empty query short-circuits to an empty result without an upstream call.
func (s *SpotifyService) SearchTracksRaw(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		return []byte(emptySearchBody), nil
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track", url.QueryEscape(query))
	return s.doRequest(ctx, endpoint)
}

// SearchTracks searches Spotify for tracks matching the query and returns the parsed result.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string) (*SearchResult, error) {
	body, err := s.SearchTracksRaw(ctx, query)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &result, nil
}
