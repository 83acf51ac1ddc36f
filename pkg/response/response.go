package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified API envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// AppError is a structured application error carrying an HTTP status and a
// message that is safe to show to the client. Err holds the underlying cause
// and is only ever surfaced in debug mode.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: msg}
}

func NewUnauthorized(msg string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: msg}
}

// NewInternal wraps an unexpected error. The client always sees a generic
// message; err is kept for logs and debug-mode responses.
func NewInternal(err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// Success sends a 200 OK response.
func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: msg, Data: data})
}

// Created sends a 201 Created response.
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: msg, Data: data})
}

// BadRequest sends a 400 without going through an AppError.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: msg})
}

// Error maps err onto the envelope. An *AppError keeps its status and
// message; anything else is treated as an internal error. Underlying error
// text is attached only when Gin runs in debug mode.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternal(err)
	}

	resp := Response{Success: false, Message: appErr.Message}
	if gin.Mode() == gin.DebugMode && appErr.Err != nil {
		resp.Detail = appErr.Err.Error()
	}
	c.JSON(appErr.Status, resp)
}
