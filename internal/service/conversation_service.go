package service

import (
	"fmt"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"strings"
	"time"
)

// FallbackReply keeps the dialogue alive when the completion API fails
// during an enhanced conversation.
const FallbackReply = "Disculpa, no te he escuchado bien. ¿Puedes repetir lo último que has dicho?"

const maxHistoryTurns = 3

type ConversationService struct {
	AI           *AIService
	BehaviorRepo *repository.BehaviorRepository
	ScenarioRepo *repository.ScenarioRepository
}

func NewConversationService(ai *AIService, behaviorRepo *repository.BehaviorRepository, scenarioRepo *repository.ScenarioRepository) *ConversationService {
	return &ConversationService{
		AI:           ai,
		BehaviorRepo: behaviorRepo,
		ScenarioRepo: scenarioRepo,
	}
}

type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationRequest struct {
	Message             string        `json:"message" binding:"required"`
	Scenario            string        `json:"scenario"`
	UserProfile         string        `json:"userProfile"`
	Difficulty          string        `json:"difficulty"`
	ConversationHistory []HistoryTurn `json:"conversationHistory"`
}

type ConversationResponse struct {
	Response  string `json:"response"`
	Voice     string `json:"voice"`
	Timestamp string `json:"timestamp"`
}

// Respond plays the scenario's client persona for one turn.
func (s *ConversationService) Respond(req ConversationRequest) (*ConversationResponse, error) {
	profile := LookupProfile(req.Scenario)
	prompt := s.buildPrompt(profile, model.Difficulty(req.Difficulty), req.UserProfile)

	history := trailingTurns(req.ConversationHistory, maxHistoryTurns)
	messages := make([]AIChatMessage, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, AIChatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: req.Message})

	reply, err := s.AI.Chat(prompt, messages, ChatOptions{
		Temperature:      0.8,
		MaxTokens:        200,
		PresencePenalty:  0.6,
		FrequencyPenalty: 0.3,
	})
	if err != nil {
		return nil, err
	}

	return &ConversationResponse{
		Response:  reply,
		Voice:     s.resolveVoice(profile),
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// buildPrompt assembles the system prompt: role framing, persona,
// difficulty adjustment, formatting rules and the objection list.
func (s *ConversationService) buildPrompt(profile ScenarioProfile, difficulty model.Difficulty, userProfile string) string {
	var b strings.Builder

	b.WriteString(RoleFraming(profile.Category))
	b.WriteString("\n\n")

	b.WriteString("Tu personaje: ")
	b.WriteString(profile.Persona)
	b.WriteString("\n\n")

	if userProfile != "" {
		b.WriteString(fmt.Sprintf("Sobre el usuario: %s\n\n", userProfile))
	}

	b.WriteString("Comportamiento: ")
	b.WriteString(DifficultyAdjustment(difficulty))
	b.WriteString("\n\n")

	b.WriteString("Objeciones que puedes plantear cuando encajen en la conversación:\n")
	for _, objection := range profile.Objections {
		b.WriteString("- ")
		b.WriteString(objection)
		b.WriteString("\n")
	}
	if len(profile.FollowUps) > 0 {
		b.WriteString("\nTemas sobre los que puedes preguntar: ")
		b.WriteString(strings.Join(profile.FollowUps, "; "))
		b.WriteString(".\n")
	}

	b.WriteString("\nReglas de formato: responde siempre en español conversacional, ")
	b.WriteString("en 2-3 frases como máximo, sin salir nunca de tu personaje.")

	return b.String()
}

// resolveVoice prefers an admin-configured behavior voice over the
// built-in profile voice.
func (s *ConversationService) resolveVoice(profile ScenarioProfile) string {
	if s.ScenarioRepo != nil && s.BehaviorRepo != nil {
		if scenario, err := s.ScenarioRepo.FindByKey(profile.Key); err == nil {
			if behavior, err := s.BehaviorRepo.FindByScenarioID(scenario.ID); err == nil && behavior.Voice != "" {
				return behavior.Voice
			}
		}
	}
	return profile.Voice
}

func trailingTurns(history []HistoryTurn, n int) []HistoryTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
