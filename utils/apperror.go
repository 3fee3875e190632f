package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind int

const (
	KindInvalidRequest ErrorKind = iota
	KindUnauthorized
	KindNotFound
	KindAuthFailure
	KindBackendUnavailable
	KindTokenGenerationFailed
	KindListBlobsFailed
	KindInternal
)

// AppError carries an error kind across the service boundary so the
// transport layer can translate it in one place. Message is safe to show to
// callers; Err holds the internal cause and stays server-side.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewInvalidRequest(message string) *AppError {
	return &AppError{Kind: KindInvalidRequest, Message: message}
}

func NewAuthFailure(err error) *AppError {
	return &AppError{Kind: KindAuthFailure, Message: "Storage backend rejected the credential", Err: err}
}

func NewBackendUnavailable(err error) *AppError {
	return &AppError{Kind: KindBackendUnavailable, Message: "Storage backend is unavailable", Err: err}
}

func NewTokenGenerationFailed(err error) *AppError {
	return &AppError{Kind: KindTokenGenerationFailed, Message: "Failed to generate SAS token", Err: err}
}

func NewListBlobsFailed(err error) *AppError {
	return &AppError{Kind: KindListBlobsFailed, Message: "Failed to list blobs", Err: err}
}

// TranslateError maps an error to the HTTP status, stable error code and
// client-safe message for the response envelope. Raw text is surfaced only
// for validation failures; backend failures keep their generic message.
func TranslateError(err error) (int, string, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case KindInvalidRequest:
			return http.StatusBadRequest, "INVALID_REQUEST", appErr.Message
		case KindUnauthorized:
			return http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access."
		case KindNotFound:
			return http.StatusNotFound, "NOT_FOUND", appErr.Message
		case KindTokenGenerationFailed:
			return http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", appErr.Message
		case KindListBlobsFailed:
			return http.StatusInternalServerError, "LIST_BLOBS_FAILED", appErr.Message
		}
	}
	return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An error occurred while processing your request."
}
