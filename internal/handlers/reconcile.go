package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/reconcile"
)

// HandleReconcile serves the single reconciliation endpoint. A request
// without a queries field gets the service metadata; a batch gets keyed
// results. The endpoint always answers 200 with a best-effort JSON body, per
// the OpenRefine reconciliation convention.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET", "POST":
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// FormValue reads the POST form and falls back to URL query parameters,
	// covering both ways OpenRefine sends batches.
	queries := r.FormValue("queries")
	if queries == "" {
		h.respond(w, r, h.reconcileService.Metadata())
		return
	}

	var batch map[string]reconcile.Query
	if err := json.Unmarshal([]byte(queries), &batch); err != nil {
		slog.Warn("Malformed queries payload, answering with metadata", "err", err)
		h.respond(w, r, h.reconcileService.Metadata())
		return
	}

	results, ok := h.reconcileService.Reconcile(r.Context(), batch)
	if !ok {
		h.respond(w, r, h.reconcileService.Metadata())
		return
	}

	h.respond(w, r, results)
}
