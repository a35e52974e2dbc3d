package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhookURLFromNgrok(t *testing.T) {
	t.Run("prefers https tunnel", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/tunnels" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"tunnels":[{"public_url":"http://abc.ngrok.io","proto":"http"},{"public_url":"https://abc.ngrok.io","proto":"https"}]}`))
		}))
		defer ts.Close()

		got, err := webhookURLFromNgrok(context.Background(), ts.URL+"/", time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "https://abc.ngrok.io/webhook/telegram" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("waits for tunnel", func(t *testing.T) {
		calls := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.Write([]byte(`{"tunnels":[]}`))
				return
			}
			w.Write([]byte(`{"tunnels":[{"public_url":"http://late.ngrok.io","proto":"http"}]}`))
		}))
		defer ts.Close()

		got, err := webhookURLFromNgrok(context.Background(), ts.URL, time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "http://late.ngrok.io/webhook/telegram" || calls != 3 {
			t.Errorf("got %q after %d calls", got, calls)
		}
	})

	t.Run("gives up", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer ts.Close()

		if _, err := webhookURLFromNgrok(context.Background(), ts.URL, time.Millisecond); err == nil {
			t.Errorf("expected error")
		}
	})
}
