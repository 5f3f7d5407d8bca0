package models

// Error codes used in boundary error responses.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the structured 4xx body for malformed requests.
// Fetch failures are never reported through this type: they travel inside
// a FetchResult with Success=false and HTTP status 200.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
