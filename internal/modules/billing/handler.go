package billing

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vendahq/backoffice/internal/apierr"
)

// Handler exposes billing HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/billing", func(r chi.Router) {
		r.Get("/plans", h.listPlans)                                // GET  /api/v1/billing/plans
		r.Get("/tenants/{tenant_id}/profile", h.getProfile)         // GET  /api/v1/billing/tenants/{id}/profile
		r.Put("/tenants/{tenant_id}/profile", h.saveProfile)        // PUT  /api/v1/billing/tenants/{id}/profile
		r.Post("/stores/{store_id}/plan", h.changePlan)             // POST /api/v1/billing/stores/{id}/plan
		r.Post("/stores/{store_id}/plan/keep", h.cancelDowngrade)   // POST /api/v1/billing/stores/{id}/plan/keep
	})
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, Plans)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "tenant_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tid, err := uuid.Parse(chi.URLParam(r, "tenant_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "tenant id is not a valid id"})
		return
	}
	p.TenantID = tid
	if p.CurrentPeriodEnd.IsZero() {
		p.CurrentPeriodEnd = time.Now().AddDate(0, 1, 0)
	}
	saved, err := h.service.SaveProfile(r.Context(), &p)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, saved)
}

func (h *Handler) changePlan(w http.ResponseWriter, r *http.Request) {
	var req ChangePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.ChangePlan(r.Context(), chi.URLParam(r, "store_id"), req.Plan)
	if err != nil {
		h.respondPlanError(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) cancelDowngrade(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CancelDowngrade(r.Context(), chi.URLParam(r, "store_id"))
	if err != nil {
		h.respondPlanError(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

// respondPlanError serializes structured plan-change errors with their code
// and slug so clients can map them; plain errors are classified by message.
func (h *Handler) respondPlanError(w http.ResponseWriter, err error) {
	if apiErr, ok := apierr.As(err); ok {
		respond(w, http.StatusUnprocessableEntity, apiErr)
		return
	}
	code := http.StatusInternalServerError
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		code = http.StatusNotFound
	} else if strings.Contains(msg, "no downgrade is pending") {
		code = http.StatusConflict
	}
	respond(w, code, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
