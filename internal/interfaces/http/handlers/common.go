package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http/middleware"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// getUserIDFromContext extracts the user ID placed in the context by the auth
// middleware.
func getUserIDFromContext(r *http.Request) string {
	return middleware.ContextGetUserID(r.Context())
}

// parsePagination extracts page and page_size from query parameters.
func parsePagination(r *http.Request) (int, int) {
	page := 1
	pageSize := 20

	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if ps, err := strconv.Atoi(v); err == nil && ps > 0 && ps <= 100 {
			pageSize = ps
		}
	}
	return page, pageSize
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error ErrorResponse `json:"error"`
}

// writeError maps an application error to its HTTP status and writes the
// standard error envelope. Messages of 5xx errors are replaced with the
// generic text for the code so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = errors.DefaultMessageForCode(code)
	}

	writeJSON(w, status, errorBody{Error: ErrorResponse{
		Code:    code.String(),
		Message: message,
	}})
}

// writeBadRequest is a shorthand for malformed input before any service call.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, errors.New(errors.CodeBadRequest, message))
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, errors.CodeBadRequest, "invalid request body")
	}
	return nil
}

//Personal.AI order the ending
