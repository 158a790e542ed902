package dto

import "time"

// SessionResponse describes the signed-in user.
type SessionResponse struct {
	Subject   string    `json:"subject"`
	Name      string    `json:"name,omitempty"`
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ErrorResponse carries a human readable failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
