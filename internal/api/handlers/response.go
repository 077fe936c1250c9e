package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// userSummary is the public view of a user; it never carries the password hash.
type userSummary struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func summarizeUser(u *domain.User) userSummary {
	return userSummary{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
