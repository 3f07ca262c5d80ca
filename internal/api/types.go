package api

import "github.com/calmkids/calmkids/internal/model"

// ContentResponse is the envelope returned by content library endpoints
type ContentResponse struct {
	Success bool                `json:"success"`
	Content []model.ContentItem `json:"content"`
	Message string              `json:"message,omitempty"`
}

// MessageResponse is the envelope returned by the auth endpoints
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Text returns the message, or the error text when no message was sent
func (r MessageResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
