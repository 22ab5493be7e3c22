package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type valueResponse struct {
	Value int `json:"value"`
}

// TestDoPostSync_Success verifies that a 200 response with valid JSON is
// unmarshaled into the output struct and the request body is sent as JSON.
func TestDoPostSync_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected application/json content type, got %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body["q"] != "测试" {
			t.Errorf("expected q=测试, got %q", body["q"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer server.Close()

	_, result, err := DoPostSync[valueResponse](
		context.Background(),
		server.Client(),
		server.URL,
		"",
		map[string]string{"q": "测试"},
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil {
		t.Fatal("expected non-nil result, got nil")
	}
	if result.Value != 42 {
		t.Errorf("expected Value=42, got %d", result.Value)
	}
}

// TestDoPostSync_Non2xxStatus verifies that a non-2xx HTTP status surfaces as
// a *StatusError carrying the status code and body.
func TestDoPostSync_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"model \"qwen3:4b\" not found"}`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[valueResponse](
		context.Background(),
		server.Client(),
		server.URL,
		"",
		map[string]string{},
	)
	if err == nil {
		t.Fatal("expected error for 404 response, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "not found") {
		t.Errorf("expected body in error, got %q", statusErr.Body)
	}
}

func TestDoPostSync_UnmarshalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `"not json"`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[valueResponse](
		context.Background(),
		server.Client(),
		server.URL,
		"",
		map[string]string{},
	)
	if err == nil {
		t.Fatal("expected unmarshal error, got nil")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unmarshal") {
		t.Errorf("expected error to contain 'unmarshal', got: %v", err)
	}
}

// TestDoPostSync_RequestCreateError verifies that an invalid URL causes
// request construction to fail and the error is propagated.
func TestDoPostSync_RequestCreateError(t *testing.T) {
	_, _, err := DoPostSync[valueResponse](
		context.Background(),
		nil,
		" bad url",
		"",
		map[string]string{},
	)
	if err == nil {
		t.Fatal("expected request creation error, got nil")
	}
}

// TestDoPostSync_Headers verifies Bearer auth and custom headers.
func TestDoPostSync_Headers(t *testing.T) {
	var gotAuth, gotCustom string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCustom = r.Header.Get("X-Custom-Header")
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[valueResponse](
		context.Background(),
		server.Client(),
		server.URL,
		"secret",
		map[string]string{},
		HeaderOption{Key: "X-Custom-Header", Value: "custom-value-123"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected Bearer auth header, got %q", gotAuth)
	}
	if gotCustom != "custom-value-123" {
		t.Errorf("expected custom header, got %q", gotCustom)
	}
}

// TestDoPostSync_ContextCanceled verifies that a context deadline aborts a
// slow request with an error wrapping context.DeadlineExceeded.
func TestDoPostSync_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := DoPostSync[valueResponse](ctx, server.Client(), server.URL, "", map[string]string{})
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
