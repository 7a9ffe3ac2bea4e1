package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteErrorRendersValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{
			"email": "must be a valid email",
			"age":   "must be at least 18",
		})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.APIError
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if body.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status field %d", body.Status)
	}
	if body.Message != "Validation error" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if !strings.Contains(body.DebugMessage, "email: must be a valid email") {
		t.Fatalf("debugMessage missing email entry: %q", body.DebugMessage)
	}
	if !strings.Contains(body.DebugMessage, "age: must be at least 18") {
		t.Fatalf("debugMessage missing age entry: %q", body.DebugMessage)
	}
	if body.Timestamp.IsZero() || body.Timestamp.After(time.Now().Add(time.Minute)) {
		t.Fatalf("unexpected timestamp %v", body.Timestamp)
	}
}

func TestWriteErrorMasksAuthenticationCause(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeUnauthorized, "bad credentials")
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", got)
	}

	var body types.APIError
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if body.Message != "Authentication failed" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.DebugMessage != "bad credentials" {
		t.Fatalf("unexpected debugMessage %q", body.DebugMessage)
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.APIError
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.DebugMessage != "" {
		t.Fatalf("internal errors must not leak causes, got %q", body.DebugMessage)
	}
}
