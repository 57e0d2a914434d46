// internal/app/system/respond/respond.go
// Package respond writes the JSON service-response envelope used by every
// API endpoint:
//
//	{ "success": bool, "message": "...", "responseObject": ..., "statusCode": 200 }
//
// Clients switch on statusCode/success, never on message text, so handlers
// are free to word messages for humans.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the wire format for all API responses.
type Envelope struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject any    `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

// Success writes a successful envelope with the given payload and status.
func Success(w http.ResponseWriter, message string, obj any, code int) {
	write(w, Envelope{
		Success:        true,
		Message:        message,
		ResponseObject: obj,
		StatusCode:     code,
	})
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string, obj any) {
	Success(w, message, obj, http.StatusOK)
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, message string, obj any) {
	Success(w, message, obj, http.StatusCreated)
}

// Failure writes a failed envelope with a nil payload and the given status.
func Failure(w http.ResponseWriter, message string, code int) {
	write(w, Envelope{
		Success:        false,
		Message:        message,
		ResponseObject: nil,
		StatusCode:     code,
	})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Failure(w, message, http.StatusBadRequest)
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, message string) {
	Failure(w, message, http.StatusNotFound)
}

// Conflict writes a 409 failure envelope.
func Conflict(w http.ResponseWriter, message string) {
	Failure(w, message, http.StatusConflict)
}

// Internal writes a 500 failure envelope with a generic message. The real
// error belongs in the log, not on the wire.
func Internal(w http.ResponseWriter, message string) {
	Failure(w, message, http.StatusInternalServerError)
}

// DecodeJSON decodes a request body into dst, rejecting unknown fields and
// trailing garbage. Returns a client-presentable error.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
