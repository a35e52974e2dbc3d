package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-reminder/pkg/gemini"
)

type wireRequest struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"system_instruction"`
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig *struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatalf("expected error for missing API key")
	}

	client, err := gemini.New(gemini.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != gemini.DefaultModel {
		t.Errorf("Model() = %q, want default %q", client.Model(), gemini.DefaultModel)
	}
}

func TestClient_GenerateContent(t *testing.T) {
	var got wireRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/models/gemini-test:generateContent" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if got.Contents[0].Parts[0].Text == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{ "content": { "parts": [ { "text": "{\"title\": \"x\"}" } ], "role": "model" } }
			],
			"usageMetadata": { "promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17 }
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-api-key", Model: "gemini-test", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		SystemInstruction: &gemini.Content{Parts: []gemini.Part{{Text: "system"}}},
		Messages:          []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "hello"}}}},
		Temperature:       0.1,
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != `{"title": "x"}` {
		t.Errorf("unexpected content: %+v", resp.Content)
	}
	if resp.Usage.TotalTokens != 17 || resp.Usage.InputTokens != 12 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "system" {
		t.Errorf("system instruction not sent: %+v", got.SystemInstruction)
	}
	if got.GenerationConfig == nil || got.GenerationConfig.Temperature != 0.1 {
		t.Errorf("temperature not sent: %+v", got.GenerationConfig)
	}

	_, err = client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "cause_500"}}}},
	})
	if err == nil {
		t.Errorf("expected error on 500 status")
	}
}

func TestClient_AssistantRoleMapsToModel(t *testing.T) {
	var got wireRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer ts.Close()

	client, _ := gemini.New(gemini.Config{APIKey: "k", APIURL: ts.URL})
	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "a"}}},
			{Role: "assistant", Parts: []gemini.Part{{Text: "b"}}},
		},
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if len(resp.Content.Parts) != 0 {
		t.Errorf("empty candidates should give empty content")
	}
	if got.Contents[1].Role != "model" {
		t.Errorf("assistant role sent as %q, want model", got.Contents[1].Role)
	}
}
