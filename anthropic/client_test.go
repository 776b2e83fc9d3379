package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientStreamSendsWireFormat(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte("data: {\"type\":\"content_block_delta\",\"delta\":{\"text\":\"hi\"}}\n"))
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, ModelSonnet)
	req := Request{
		Messages: []MessageParam{NewUserMessage("hello")},
		System:   "be brief",
		Tools:    []Tool{{Name: "create_exercise", Description: "d", InputSchema: json.RawMessage(`{}`)}},
	}

	var text string
	err := client.Stream(context.Background(), "sk-test", req, func(ev Event) error {
		if delta, ok := ev.(TextDelta); ok {
			text += delta.Text
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if text != "hi" {
		t.Errorf("streamed text = %q, want %q", text, "hi")
	}

	if got := gotHeaders.Get("x-api-key"); got != "sk-test" {
		t.Errorf("x-api-key = %q, want %q", got, "sk-test")
	}
	if got := gotHeaders.Get("anthropic-version"); got != "2023-06-01" {
		t.Errorf("anthropic-version = %q", got)
	}
	if got := gotHeaders.Get("content-type"); got != "application/json" {
		t.Errorf("content-type = %q", got)
	}

	if gotBody["model"] != ModelSonnet {
		t.Errorf("model = %v, want %v", gotBody["model"], ModelSonnet)
	}
	if gotBody["stream"] != true {
		t.Errorf("stream = %v, want true", gotBody["stream"])
	}
	if gotBody["max_tokens"] != float64(1024) {
		t.Errorf("max_tokens = %v, want 1024", gotBody["max_tokens"])
	}
	if gotBody["system"] != "be brief" {
		t.Errorf("system = %v", gotBody["system"])
	}
	if _, ok := gotBody["tools"]; !ok {
		t.Error("tools missing from request body")
	}
}

func TestClientStreamOmitsEmptySystem(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte("data: [DONE]\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	req := Request{Messages: []MessageParam{NewUserMessage("hi")}}

	if err := client.Stream(context.Background(), "k", req, func(Event) error { return nil }); err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}
	if _, present := gotBody["system"]; present {
		t.Error("empty system prompt should be omitted from the body")
	}
}

func TestClientStreamNon200(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, ModelSonnet)
			err := client.Stream(context.Background(), "k", Request{}, func(Event) error {
				t.Error("emit should not be called on a non-200 response")
				return nil
			})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
		})
	}
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("", "")
	if client.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, defaultBaseURL)
	}
	if client.Model() != DefaultModel {
		t.Errorf("model = %q, want %q", client.Model(), DefaultModel)
	}
}

func TestNewToolUseBlockSanitizesInvalidJSON(t *testing.T) {
	block := NewToolUseBlock("id", "create_exercise", `{"name": "Squ`)
	if string(block.Input) != "{}" {
		t.Errorf("invalid input should be replaced with {}, got %s", block.Input)
	}

	valid := NewToolUseBlock("id", "create_exercise", `{"name":"Squat"}`)
	if string(valid.Input) != `{"name":"Squat"}` {
		t.Errorf("valid input should pass through, got %s", valid.Input)
	}
}
