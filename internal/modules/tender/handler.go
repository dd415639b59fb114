package tender

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes tender HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores/{store_id}/tenders", func(r chi.Router) {
		r.Put("/", h.configure) // PUT /api/v1/stores/{store_id}/tenders
		r.Get("/", h.list)      // GET /api/v1/stores/{store_id}/tenders
	})
	r.Route("/api/v1/tenders", func(r chi.Router) {
		r.Post("/{id}/enable", h.enable)   // POST   /api/v1/tenders/{id}/enable
		r.Post("/{id}/disable", h.disable) // POST   /api/v1/tenders/{id}/disable
		r.Delete("/{id}", h.delete)        // DELETE /api/v1/tenders/{id}
	})
}

func (h *Handler) configure(w http.ResponseWriter, r *http.Request) {
	var req ConfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	t, err := h.service.Configure(r.Context(), chi.URLParam(r, "store_id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown") || strings.Contains(err.Error(), "not a valid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenders, err := h.service.ListByStore(r.Context(), chi.URLParam(r, "store_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tenders)
}

func (h *Handler) enable(w http.ResponseWriter, r *http.Request)  { h.setEnabled(w, r, true) }
func (h *Handler) disable(w http.ResponseWriter, r *http.Request) { h.setEnabled(w, r, false) }

func (h *Handler) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	t, err := h.service.SetEnabled(r.Context(), chi.URLParam(r, "id"), enabled)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
