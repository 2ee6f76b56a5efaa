package types

// SuccessEnvelope is the JSON shape for every successful response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// APIError carries the public portion of a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the JSON shape for every failed response.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}
