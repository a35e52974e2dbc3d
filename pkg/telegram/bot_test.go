package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task-reminder/pkg/telegram"
)

func TestBot(t *testing.T) {
	var lastWebhook map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if strings.HasSuffix(path, "/setWebhook") {
			json.NewDecoder(r.Body).Decode(&lastWebhook)
			if lastWebhook["url"] == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid url"}`))
				return
			}
			if lastWebhook["url"] == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true, "description": "webhook set"}`))
			return
		}

		if strings.HasSuffix(path, "/sendMessage") {
			var req map[string]interface{}
			json.NewDecoder(r.Body).Decode(&req)
			text := req["text"].(string)

			if text == "cause_error" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"ok": false, "description": "invalid text"}`))
				return
			}
			if text == "cause_500" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"ok": true}`))
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	ctx := context.Background()
	bot := telegram.NewBot("test-token")
	bot.SetAPIURL(ts.URL) // Route commands to test server instead of api.telegram.org

	t.Run("SetWebhook Success", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook/telegram", "s3cret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastWebhook["secret_token"] != "s3cret" {
			t.Errorf("secret not forwarded: %v", lastWebhook)
		}
	})

	t.Run("SetWebhook Without Secret", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "https://example.com/webhook/telegram", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := lastWebhook["secret_token"]; ok {
			t.Errorf("empty secret should be omitted: %v", lastWebhook)
		}
	})

	t.Run("SetWebhook API Error", func(t *testing.T) {
		err := bot.SetWebhook(ctx, "cause_error", "")
		if err == nil || !strings.Contains(err.Error(), "invalid url") {
			t.Errorf("expected invalid url error, got %v", err)
		}
	})

	t.Run("SetWebhook Server Error", func(t *testing.T) {
		if err := bot.SetWebhook(ctx, "cause_500", ""); err == nil {
			t.Errorf("expected error on 500")
		}
	})

	t.Run("SendMessage Success", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, "hello"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("SendMessage API Error", func(t *testing.T) {
		err := bot.SendMessage(ctx, 123, "cause_error")
		if err == nil || !strings.Contains(err.Error(), "invalid text") {
			t.Errorf("expected invalid text error, got %v", err)
		}
	})

	t.Run("SendMessage Server Error", func(t *testing.T) {
		if err := bot.SendMessage(ctx, 123, "cause_500"); err == nil {
			t.Errorf("expected error on 500")
		}
	})

	t.Run("SendMessage Cancelled Context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := bot.SendMessage(cctx, 123, "hello"); err == nil {
			t.Errorf("expected error for cancelled context")
		}
	})
}
