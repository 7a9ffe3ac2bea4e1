package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/mail"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeMailChecker struct {
	health mail.Health
}

func (f fakeMailChecker) Health() mail.Health { return f.health }

func healthTestConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
}

func TestHealthReadyReportsOK(t *testing.T) {
	handler := HealthReady(healthTestConfig(), testLogger(), fakePinger{}, fakePinger{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["database"] != "ok" || envelope.Data["redis"] != "ok" {
		t.Fatalf("expected store checks, got %+v", envelope.Data)
	}
}

func TestHealthReadyFailsWhenDatabaseDown(t *testing.T) {
	handler := HealthReady(healthTestConfig(), testLogger(), fakePinger{err: errors.New("refused")}, fakePinger{})
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestHealthEmailUp(t *testing.T) {
	checker := fakeMailChecker{health: mail.Health{
		Status:  mail.StatusUp,
		Details: map[string]string{"host": "smtp.test", "protocol": "smtp"},
	}}
	req := httptest.NewRequest(http.MethodGet, "/health/email", nil)
	resp := httptest.NewRecorder()
	HealthEmail(checker, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data mail.Health `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Status != mail.StatusUp {
		t.Fatalf("expected UP, got %s", envelope.Data.Status)
	}
	if envelope.Data.Details["host"] != "smtp.test" {
		t.Fatalf("expected host detail, got %+v", envelope.Data.Details)
	}
}

func TestHealthEmailDown(t *testing.T) {
	checker := fakeMailChecker{health: mail.Health{
		Status:  mail.StatusDown,
		Details: map[string]string{"error": "dial tcp: connection refused"},
	}}
	req := httptest.NewRequest(http.MethodGet, "/health/email", nil)
	resp := httptest.NewRecorder()
	HealthEmail(checker, testLogger())(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
