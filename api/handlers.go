package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golf-client/view"
)

// SummaryFunc returns the current view summary. It is called from the HTTP
// goroutine and must hop onto whatever goroutine owns the view.
type SummaryFunc func(ctx context.Context) (view.Summary, error)

// Handler holds dependencies for the debug handlers.
type Handler struct {
	Summary SummaryFunc
}

// NewHandler creates a new debug handler reading the view through summary.
func NewHandler(summary SummaryFunc) *Handler {
	return &Handler{Summary: summary}
}

// Routes registers the debug endpoints on a fresh mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/view", h.View)
	mux.HandleFunc("/health", h.Health)
	return mux
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

// View returns the read-only view summary as JSON.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, err := h.Summary(r.Context())
	if err != nil {
		slog.Warn("view summary unavailable", "tag", "api", "err", err)
		http.Error(w, "view unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		slog.Error("encode view summary", "tag", "api", "err", err)
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}` + "\n"))
}
