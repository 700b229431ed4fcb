package payload

import "time"

// LoginRequest fields may be empty; emptiness is reported by the reconciler
// so every failure shares one message table.
type LoginRequest struct {
	Email    string `json:"email"    validate:"max=320"`
	Password string `json:"password" validate:"max=1024"`
}

type LoginResponse struct {
	Redirect string `json:"redirect"`
}

type SessionResponse struct {
	ID          string         `json:"id"`
	SubjectID   string         `json:"subject_id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name,omitempty"`
	Profile     map[string]any `json:"profile"`
	ExpiresAt   time.Time      `json:"expires_at"`
}
