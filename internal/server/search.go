package server

import (
	"net/http"

	"github.com/barboracab/hangthedj/internal/catalog"
	"github.com/charmbracelet/log"
)

// SearchHandler proxies free-text track searches to the catalog provider.
//
// The provider's response body is forwarded verbatim; any failure collapses
// into a generic 500 with no distinction between credential, network and
// rate-limit causes.
type SearchHandler struct {
	catalog catalog.Service
	logger  *log.Logger
}

// NewSearchHandler creates a SearchHandler backed by the given catalog service.
func NewSearchHandler(svc catalog.Service, logger *log.Logger) *SearchHandler {
	return &SearchHandler{catalog: svc, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/search"}
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")

	body, err := h.catalog.SearchTracksRaw(r.Context(), query)
	if err != nil {
		logError(h.logger, "catalog search failed", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, "catalog search failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
