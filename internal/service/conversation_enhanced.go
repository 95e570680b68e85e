package service

import (
	"fmt"
	"strings"
	"time"
)

type EnhancedScenario struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	PromptInstructions string `json:"prompt_instructions"`
}

type KnowledgeEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EnhancedConversationRequest struct {
	Messages       []HistoryTurn    `json:"messages" binding:"required"`
	Scenario       EnhancedScenario `json:"scenario"`
	KnowledgeBase  []KnowledgeEntry `json:"knowledgeBase"`
	EvaluationMode bool             `json:"evaluationMode"`
}

// RealTimeAnalysis is a best-effort heuristic hint, computed locally and
// independent of the completion call.
type RealTimeAnalysis struct {
	KnowledgeAccuracy string   `json:"knowledgeAccuracy"`
	Tone              string   `json:"tone"`
	ResponseQuality   string   `json:"responseQuality"`
	Suggestions       []string `json:"suggestions"`
}

type EnhancedConversationResponse struct {
	Response              string            `json:"response"`
	RealTimeAnalysis      *RealTimeAnalysis `json:"realTimeAnalysis"`
	ConversationContinues bool              `json:"conversationContinues"`
	Timestamp             string            `json:"timestamp"`
}

// negativeToneWords approximates professionalism in the user's messages.
var negativeToneWords = []string{
	"no sé", "ni idea", "imposible", "me da igual",
	"odio", "tontería", "no me importa", "déjame en paz",
}

// RespondEnhanced injects the knowledge base into the prompt and, in
// evaluation mode, attaches the heuristic analysis of the last user turn.
func (s *ConversationService) RespondEnhanced(req EnhancedConversationRequest) (*EnhancedConversationResponse, error) {
	prompt := s.buildEnhancedPrompt(req.Scenario, req.KnowledgeBase)

	messages := make([]AIChatMessage, 0, len(req.Messages))
	for _, turn := range req.Messages {
		messages = append(messages, AIChatMessage{Role: turn.Role, Content: turn.Content})
	}

	var analysis *RealTimeAnalysis
	if req.EvaluationMode && len(req.Messages) > 1 {
		analysis = analyzeLastUserTurn(req.Messages, req.KnowledgeBase)
	}

	reply, err := s.AI.Chat(prompt, messages, ChatOptions{
		Temperature:      0.8,
		MaxTokens:        200,
		PresencePenalty:  0.6,
		FrequencyPenalty: 0.3,
	})
	if err != nil {
		return nil, err
	}

	return &EnhancedConversationResponse{
		Response:              reply,
		RealTimeAnalysis:      analysis,
		ConversationContinues: true,
		Timestamp:             time.Now().Format(time.RFC3339),
	}, nil
}

func (s *ConversationService) buildEnhancedPrompt(scenario EnhancedScenario, kb []KnowledgeEntry) string {
	var b strings.Builder

	b.WriteString("Eres el interlocutor de un entrenamiento de conversación profesional.\n")
	if scenario.Title != "" {
		b.WriteString(fmt.Sprintf("Escenario: %s. %s\n", scenario.Title, scenario.Description))
	}
	if scenario.PromptInstructions != "" {
		b.WriteString("Instrucciones del escenario: ")
		b.WriteString(scenario.PromptInstructions)
		b.WriteString("\n")
	}

	if len(kb) > 0 {
		b.WriteString("\nBase de conocimiento de referencia:\n")
		for i, doc := range kb {
			b.WriteString(fmt.Sprintf("[Documento %d: %s]\n%s\n\n", i+1, doc.Title, doc.Content))
		}
		b.WriteString("Si el usuario afirma algo que contradice la base de conocimiento, ")
		b.WriteString("señálalo con naturalidad dentro de tu personaje.\n")
	}

	b.WriteString("\nResponde siempre en español conversacional, en 2-3 frases como máximo.")

	return b.String()
}

// analyzeLastUserTurn matches the user's last message against the first 50
// characters of each document (case-insensitive) and scans for negative-tone
// keywords. Crude on purpose: a hint, not a verdict.
func analyzeLastUserTurn(messages []HistoryTurn, kb []KnowledgeEntry) *RealTimeAnalysis {
	lastUser := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			lastUser = messages[i].Content
			break
		}
	}

	lower := strings.ToLower(lastUser)

	accuracy := "media"
	for _, doc := range kb {
		snippet := strings.ToLower(doc.Content)
		if len(snippet) > 50 {
			snippet = snippet[:50]
		}
		if snippet != "" && strings.Contains(lower, strings.TrimSpace(snippet)) {
			accuracy = "alta"
			break
		}
	}

	tone := "profesional"
	for _, word := range negativeToneWords {
		if strings.Contains(lower, word) {
			tone = "negativo"
			break
		}
	}

	quality := "buena"
	if tone == "negativo" || len(strings.Fields(lastUser)) < 4 {
		quality = "mejorable"
	}

	var suggestions []string
	if accuracy == "media" {
		suggestions = []string{
			"Apoya tus argumentos en los datos de la base de conocimiento",
			"Menciona cifras o casos concretos del material de referencia",
		}
	} else {
		suggestions = []string{
			"Mantén el tono profesional durante toda la conversación",
			"Desarrolla tus respuestas con algo más de detalle",
		}
	}

	return &RealTimeAnalysis{
		KnowledgeAccuracy: accuracy,
		Tone:              tone,
		ResponseQuality:   quality,
		Suggestions:       suggestions,
	}
}
