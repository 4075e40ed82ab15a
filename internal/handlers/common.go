package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/reconcile"
)

type Handler struct {
	reconcileService *reconcile.Service
}

func New(service *reconcile.Service) *Handler {
	return &Handler{
		reconcileService: service,
	}
}

// respond writes data as JSON, or as a JSONP script when the request carries
// a callback parameter (OpenRefine's legacy cross-origin mode).
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}) {
	if callback := r.URL.Query().Get("callback"); callback != "" {
		h.writeJSONP(w, callback, data)
		return
	}
	h.writeJSON(w, data)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSONP(w http.ResponseWriter, callback string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("Unable to encode JSONP response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/javascript")
	if _, err := fmt.Fprintf(w, "%s(%s)", callback, payload); err != nil {
		slog.Error("Unable to write JSONP response", "err", err)
	}
}
