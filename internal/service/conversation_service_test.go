package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"roleplay_coach_backend/internal/util"
	"strings"
	"testing"
)

func TestRespondReturnsReplyAndVoice(t *testing.T) {
	var captured ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "No tengo tiempo ahora. ¿De qué se trata?"}},
			},
		})
	}))
	defer srv.Close()

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	resp, err := svc.Respond(ConversationRequest{
		Message:    "Buenos días, le llamo de Acme",
		Scenario:   "sales-cold-call",
		Difficulty: "advanced",
	})
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if resp.Response != "No tengo tiempo ahora. ¿De qué se trata?" {
		t.Fatalf("unexpected reply %q", resp.Response)
	}
	if resp.Voice != "Daniel" {
		t.Fatalf("expected profile voice Daniel, got %q", resp.Voice)
	}
	if resp.Timestamp == "" {
		t.Fatal("expected a timestamp")
	}

	if captured.Temperature != 0.8 || captured.PresencePenalty != 0.6 || captured.FrequencyPenalty != 0.3 {
		t.Fatalf("unexpected sampling parameters: %+v", captured)
	}
	if len(captured.Messages) == 0 || captured.Messages[0].Role != "system" {
		t.Fatal("expected a leading system message")
	}
	if !strings.Contains(captured.Messages[0].Content, "Carlos") {
		t.Fatalf("system prompt missing persona:\n%s", captured.Messages[0].Content)
	}
}

func TestRespondTrimsHistory(t *testing.T) {
	var captured ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	history := []HistoryTurn{
		{Role: "user", Content: "uno"},
		{Role: "assistant", Content: "dos"},
		{Role: "user", Content: "tres"},
		{Role: "assistant", Content: "cuatro"},
		{Role: "user", Content: "cinco"},
	}

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	if _, err := svc.Respond(ConversationRequest{Message: "seis", ConversationHistory: history}); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	// system + last 3 history turns + current message
	if len(captured.Messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(captured.Messages))
	}
	if captured.Messages[1].Content != "tres" {
		t.Fatalf("history trim kept wrong turns, first kept: %q", captured.Messages[1].Content)
	}
	if captured.Messages[4].Content != "seis" {
		t.Fatalf("current message misplaced: %q", captured.Messages[4].Content)
	}
}

func TestRespondPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	if _, err := svc.Respond(ConversationRequest{Message: "hola"}); err == nil {
		t.Fatal("expected an error on upstream failure")
	}
}

func TestRespondWithoutAPIKey(t *testing.T) {
	svc := NewConversationService(testAIService("http://127.0.0.1:0"), nil, nil)
	svc.AI.config.APIKey = ""

	_, err := svc.Respond(ConversationRequest{Message: "hola"})
	if err != util.ErrMissingAIKey {
		t.Fatalf("expected ErrMissingAIKey, got %v", err)
	}
}

func TestTrailingTurns(t *testing.T) {
	turns := []HistoryTurn{{Content: "a"}, {Content: "b"}}
	if got := trailingTurns(turns, 3); len(got) != 2 {
		t.Fatalf("short history should pass through, got %d turns", len(got))
	}
	turns = append(turns, HistoryTurn{Content: "c"}, HistoryTurn{Content: "d"})
	got := trailingTurns(turns, 3)
	if len(got) != 3 || got[0].Content != "b" {
		t.Fatalf("unexpected trim result: %+v", got)
	}
}
