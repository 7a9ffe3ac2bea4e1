package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
)

type registerBody struct {
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=18"`
}

func TestDecodeJSONBodyCollectsFieldMessages(t *testing.T) {
	r := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"nope","age":12}`))

	var body registerBody
	err := DecodeJSONBody(r, &body)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected string details map, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["age"] != "must be at least 18" {
		t.Fatalf("unexpected age message %q", details["age"])
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/register", strings.NewReader(`{"email":"a@b.com","age":30,"extra":true}`))

	var body registerBody
	err := DecodeJSONBody(r, &body)
	if err == nil {
		t.Fatal("expected decode error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestParseQueryIntBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/items?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected out of range error")
	}

	r = httptest.NewRequest("GET", "/items", nil)
	got, err := ParseQueryInt(r, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected default 25, got %d", got)
	}
}
