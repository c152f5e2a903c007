package site

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ziadkadry99/navmark/internal/nav"
	"github.com/ziadkadry99/navmark/internal/selection"
)

// activateRequest is the JSON body for POST /api/nav/activate.
type activateRequest struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"` // page the click happened on
}

// stateResponse is the marker state of every item.
type stateResponse struct {
	Items     []nav.Item `json:"items"`
	Active    string     `json:"active,omitempty"`
	Selection string     `json:"selection,omitempty"`
}

// selectionResponse is the JSON response for GET /api/nav/selection.
type selectionResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// handleActivate replays the page load for the click's page, so the
// stopped marker matches what the browser shows, then applies the click.
func (s *Site) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := r.Context()
	client := clientID(ctx)
	h := s.highlighter(client)
	if req.Path != "" {
		h.ActivateOnLoad(req.Path)
	}

	if err := h.ActivateOnClick(ctx, req.ID); err != nil {
		if errors.Is(err, nav.ErrUnknownItem) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.hub.BroadcastClick(client, req.ID)
	writeJSON(w, http.StatusOK, s.state(r, h))
}

// handleLoadState reports the markers a load of ?path= would produce,
// without recording anything.
func (s *Site) handleLoadState(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	h := s.highlighter(clientID(r.Context()))
	h.ActivateOnLoad(path)
	writeJSON(w, http.StatusOK, s.state(r, h))
}

func (s *Site) handleSelection(w http.ResponseWriter, r *http.Request) {
	h := s.highlighter(clientID(r.Context()))
	v, ok, err := h.Selection(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Key: h.StorageKey(), Value: v, Found: ok})
}

func (s *Site) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []selection.Activation{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	hist, err := s.store.History(r.Context(), clientID(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if hist == nil {
		hist = []selection.Activation{}
	}
	writeJSON(w, http.StatusOK, hist)
}

func (s *Site) state(r *http.Request, h *nav.Highlighter) stateResponse {
	resp := stateResponse{Items: h.Snapshot()}
	if active, ok := h.Active(); ok {
		resp.Active = active.ID
	}
	if v, ok, err := h.Selection(r.Context()); err == nil && ok {
		resp.Selection = v
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
