package profile

import (
	"PouchCell/internal/auth"
	"PouchCell/internal/repo"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	Users repo.Users
	Log   *zap.Logger
}

type profileResponse struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// GetProfile returns the account behind the request's session.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.Users.GetByLogin(r.Context(), sess.Login)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && u.ID != sess.UserID) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Log.Error("load profile failed", zap.String("login", sess.Login), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileResponse{ID: u.ID, Login: u.Login, Email: u.Email})
}
