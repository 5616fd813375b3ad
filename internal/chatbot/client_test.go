// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kavio/cli/internal/apierr"
)

func TestSendRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if in.Message != "hello" {
			t.Errorf("message = %q, want %q", in.Message, "hello")
		}
		json.NewEncoder(w).Encode(map[string]string{"reply": "hi there"})
	}))
	defer srv.Close()

	reply, err := New(srv.URL).Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q, want %q", reply, "hi there")
	}
}

func TestSendSurfacesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if apierr.KindOf(err) != apierr.RequestFailed {
		t.Errorf("kind = %q, want %q", apierr.KindOf(err), apierr.RequestFailed)
	}
}

func TestSendUnreachableHostIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierr.IsNetwork(err) {
		t.Errorf("expected network error, got %v", err)
	}
}
