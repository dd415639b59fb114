package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)       // POST /api/v1/auth/login
		r.Post("/register", h.register) // POST /api/v1/auth/register
		r.Get("/me", h.me)              // GET  /api/v1/auth/me
		r.Post("/logout", h.logout)     // POST /api/v1/auth/logout
	})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	session, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respond(w, http.StatusUnauthorized, map[string]string{"error": MessageFor(err)})
		return
	}
	respond(w, http.StatusOK, session)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	u, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		code := http.StatusBadRequest
		if pe, ok := err.(*ProviderError); ok && pe.Name == ErrUsernameExists {
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": MessageFor(err)})
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.CurrentUser(r.Context(), bearerToken(r))
	if err != nil {
		respond(w, http.StatusUnauthorized, map[string]string{"error": MessageFor(err)})
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context(), bearerToken(r)); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}
