package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	Unverified bool   `json:"unverified,omitempty"`
}

// MessageResponse is the bare {msg} body used by the public API.
type MessageResponse struct {
	Msg     string `json:"msg"`
	Warning string `json:"warning,omitempty"`
}

type ReviewResponse struct {
	Review
	Warning string `json:"warning,omitempty"`
}

type VerifyEmailResponse struct {
	Msg             string `json:"msg"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}
