package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/monitoring"
	"time"
)

// AIService wraps an OpenAI-compatible chat-completions endpoint.
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{},
	}
}

// UpdateConfig swaps the upstream endpoint and credentials on config reload.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.config = cfg
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions carries the sampling parameters; each caller fixes its own.
type ChatOptions struct {
	Temperature      float64
	MaxTokens        int
	PresencePenalty  float64
	FrequencyPenalty float64
}

type ChatCompletionRequest struct {
	Model            string          `json:"model"`
	Messages         []AIChatMessage `json:"messages"`
	Temperature      float64         `json:"temperature,omitempty"`
	MaxTokens        int             `json:"max_tokens,omitempty"`
	PresencePenalty  float64         `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64         `json:"frequency_penalty,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends a system prompt plus message history and returns the first choice.
func (s *AIService) Chat(system string, history []AIChatMessage, opts ChatOptions) (string, error) {
	if s.config.APIKey == "" {
		return "", util.ErrMissingAIKey
	}

	messages := []AIChatMessage{{Role: "system", Content: system}}
	messages = append(messages, history...)

	reqBody := ChatCompletionRequest{
		Model:            s.config.Model,
		Messages:         messages,
		Temperature:      opts.Temperature,
		MaxTokens:        opts.MaxTokens,
		PresencePenalty:  opts.PresencePenalty,
		FrequencyPenalty: opts.FrequencyPenalty,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	monitoring.ObserveUpstream("completion", start, err)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", util.ErrEmptyAIResponse
}
