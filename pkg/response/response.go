// Package response writes the uniform JSON envelope used by every endpoint:
//
//	{"success": true,  "message": "...", "data": {...}}
//	{"success": false, "message": "..."}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/skbags/atelier/pkg/apperr"
	"github.com/skbags/atelier/pkg/logger"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a bare payload (no envelope) with the given status.
// Used where the frontend expects the raw resource shape.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

// Success sends a 200 envelope with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Success: true, Data: data})
}

// Created sends a 201 envelope with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// Message sends a 200 envelope with just a message.
func Message(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, envelope{Success: true, Message: message})
}

// Error sends a failure envelope with an explicit status and message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Success: false, Message: message})
}

// Err renders a classified application error: status from the taxonomy,
// message sanitised for the caller, full detail logged server-side for 5xx.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
	}
	Error(w, status, apperr.PublicMessage(err))
}

// ValidationError sends a 400 with the first field-level failure message.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Error(w, http.StatusBadRequest, msg)
		return
	}
	Error(w, http.StatusBadRequest, "Validation failed")
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(w, http.StatusNotFound, message)
}
