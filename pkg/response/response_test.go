package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp
}

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
	}{
		{"bad request", NewBadRequest("bad"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("no"), http.StatusUnauthorized},
		{"forbidden", NewForbidden("no"), http.StatusForbidden},
		{"not found", NewNotFound("gone"), http.StatusNotFound},
		{"conflict", NewConflict("dup"), http.StatusConflict},
		{"internal", NewInternal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, expected %d", tt.err.Status, tt.status)
			}
			if tt.err.Error() != tt.err.Message {
				t.Errorf("Error() = %q, expected Message %q", tt.err.Error(), tt.err.Message)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("db down")
	wrapped := fmt.Errorf("query: %w", cause)
	appErr := NewInternal(wrapped)

	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should reach the underlying cause")
	}
}

func TestError_AppErrorKeepsStatusAndMessage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, NewConflict("username already taken"))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusConflict)
	}
	resp := decode(t, w)
	if resp.Success {
		t.Error("Success should be false")
	}
	if resp.Message != "username already taken" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestError_WrappedAppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("handler: %w", NewNotFound("user not found")))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusNotFound)
	}
	if resp := decode(t, w); resp.Message != "user not found" {
		t.Errorf("Message = %q", resp.Message)
	}
}

func TestError_GenericErrorBecomesInternal(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("disk on fire"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusInternalServerError)
	}
	resp := decode(t, w)
	if resp.Message != "internal server error" {
		t.Errorf("Message = %q, internals must not leak", resp.Message)
	}
	if resp.Detail != "" {
		t.Errorf("Detail = %q, expected empty outside debug mode", resp.Detail)
	}
}

func TestError_DetailOnlyInDebugMode(t *testing.T) {
	gin.SetMode(gin.DebugMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("disk on fire"))

	resp := decode(t, w)
	if resp.Message != "internal server error" {
		t.Errorf("Message = %q", resp.Message)
	}
	if resp.Detail != "disk on fire" {
		t.Errorf("Detail = %q, expected cause in debug mode", resp.Detail)
	}
}

func TestSuccessAndCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, "ok", gin.H{"id": 1})
	if w.Code != http.StatusOK {
		t.Errorf("Success status = %d", w.Code)
	}
	if resp := decode(t, w); !resp.Success || resp.Message != "ok" {
		t.Errorf("unexpected envelope: %+v", resp)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Created(c, "made", nil)
	if w.Code != http.StatusCreated {
		t.Errorf("Created status = %d", w.Code)
	}
}

func TestBadRequestHelper(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	BadRequest(c, "missing field")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if resp := decode(t, w); resp.Success || resp.Message != "missing field" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}
