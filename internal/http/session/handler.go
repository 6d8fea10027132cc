package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rsharma/sellsathi/internal/session"
)

type Handler struct {
	sess *session.Session
}

func NewHandler(sess *session.Session) *Handler {
	return &Handler{sess: sess}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Get("/profile", h.profile)
	r.Post("/logout", h.logout)
}

type registerRequest struct {
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
}

type profileResponse struct {
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.sess.Register(session.Profile{
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
	})
	if err != nil {
		if errors.Is(err, session.ErrMissingField) || errors.Is(err, session.ErrUnknownBizType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) profile(w http.ResponseWriter, _ *http.Request) {
	p, ok := h.sess.Profile()
	if !ok {
		http.Error(w, session.ErrNotRegistered.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(profileResponse{
		OwnerName:    p.OwnerName,
		Email:        p.Email,
		BusinessName: p.BusinessName,
		BusinessType: p.BusinessType,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
