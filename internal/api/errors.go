package api

import (
	"encoding/json"
	"net/http"
)

// Error codes shared by all JSON error bodies.
const (
	codeAuth       = "AuthError"
	codeAccess     = "AccessDeniedError"
	codeNotFound   = "FileNotFoundError"
	codeRateLimit  = "RateLimitExceeded"
	codeBadRequest = "BadRequestError"
	codeInternal   = "InternalError"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError emits the uniform {code, message} error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Code: code, Message: message}) //nolint:errcheck
}
