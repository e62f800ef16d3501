// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides the uniform response envelope used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Failure) across the entire application is an
// [Envelope] of the shape {"status", "message"?, "data"?}. The HTTP status is
// carried next to the body and never duplicated inside it.
//
// [Error] is the only place where an [apperr.Kind] is turned into an HTTP status.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/fleetadmin/internal/platform/apperr"
	"github.com/taibuivan/fleetadmin/internal/platform/ctxutil"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Empty is the payload type of envelopes that never carry data.
type Empty struct{}

// Envelope is the JSON wrapper every endpoint answers with.
//
// Data is only ever set on success envelopes. Absent fields are omitted
// rather than serialized as null.
type Envelope[T any] struct {
	HTTPStatus int    `json:"-"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Data       *T     `json:"data,omitempty"`
}

// # Constructors

// Success builds a success envelope carrying data.
func Success[T any](httpStatus int, message string, data T) Envelope[T] {
	return Envelope[T]{
		HTTPStatus: httpStatus,
		Status:     StatusSuccess,
		Message:    message,
		Data:       &data,
	}
}

// Message builds a success envelope with a message and no data.
func Message(httpStatus int, message string) Envelope[Empty] {
	return Envelope[Empty]{HTTPStatus: httpStatus, Status: StatusSuccess, Message: message}
}

// Failure builds a failure envelope. Failures never carry data.
func Failure(httpStatus int, message string) Envelope[Empty] {
	return Envelope[Empty]{HTTPStatus: httpStatus, Status: StatusFail, Message: message}
}

// BadRequest is a 400 failure.
func BadRequest(message string) Envelope[Empty] { return Failure(http.StatusBadRequest, message) }

// Unauthorized is a 401 failure.
func Unauthorized(message string) Envelope[Empty] {
	return Failure(http.StatusUnauthorized, message)
}

// Forbidden is a 403 failure.
func Forbidden(message string) Envelope[Empty] { return Failure(http.StatusForbidden, message) }

// NotFound is a 404 failure.
func NotFound(message string) Envelope[Empty] { return Failure(http.StatusNotFound, message) }

// Conflict is a 409 failure.
func Conflict(message string) Envelope[Empty] { return Failure(http.StatusConflict, message) }

// ServerError is a 500 failure.
func ServerError(message string) Envelope[Empty] {
	return Failure(http.StatusInternalServerError, message)
}

// # Writers

// Write serializes the envelope and sets the HTTP status from it.
func Write[T any](writer http.ResponseWriter, envelope Envelope[T]) {
	status := envelope.HTTPStatus
	if status == 0 {
		status = http.StatusOK
	}
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(envelope)
}

// OK writes a 200 success envelope with data.
func OK[T any](writer http.ResponseWriter, message string, data T) {
	Write(writer, Success(http.StatusOK, message, data))
}

// Created writes a 201 success envelope with data.
func Created[T any](writer http.ResponseWriter, message string, data T) {
	Write(writer, Success(http.StatusCreated, message, data))
}

// # Error Mapping

// kindStatus maps the error taxonomy onto HTTP status codes.
var kindStatus = map[apperr.Kind]int{
	apperr.KindMissingToken:     http.StatusUnauthorized,
	apperr.KindMalformedToken:   http.StatusUnauthorized,
	apperr.KindInvalidSignature: http.StatusUnauthorized,
	apperr.KindExpired:          http.StatusUnauthorized,
	apperr.KindBlacklisted:      http.StatusUnauthorized,
	apperr.KindStoreUnavailable: http.StatusInternalServerError,

	apperr.KindBadRequest:   http.StatusBadRequest,
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindUnauthorized: http.StatusUnauthorized,
	apperr.KindForbidden:    http.StatusForbidden,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindConflict:     http.StatusConflict,
	apperr.KindRateLimited:  http.StatusTooManyRequests,
	apperr.KindInternal:     http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for an error kind. Unknown kinds are 500.
func StatusOf(kind apperr.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FailureFor converts any error into its failure envelope.
//
// Errors outside the taxonomy become a generic 500 so raw library text never
// reaches the client.
func FailureFor(err error) Envelope[Empty] {
	appError := apperr.As(err)
	if appError == nil {
		return ServerError("An unexpected error occurred")
	}

	status := StatusOf(appError.Kind)
	message := appError.Message
	if status >= http.StatusInternalServerError && appError.Kind != apperr.KindStoreUnavailable {
		message = "An unexpected error occurred"
	}
	return Failure(status, message)
}

// Error converts any Go error into a failure envelope and writes it.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	envelope := FailureFor(err)
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
	} else if envelope.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("kind", string(appError.Kind)),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	Write(writer, envelope)
}
