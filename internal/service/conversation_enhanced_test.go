package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondEnhancedAttachesAnalysisInEvaluationMode(t *testing.T) {
	srv := fakeCompletionServer(t, "Entiendo, cuénteme más sobre su propuesta.")

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	resp, err := svc.RespondEnhanced(EnhancedConversationRequest{
		Messages: []HistoryTurn{
			{Role: "assistant", Content: "¿En qué puedo ayudarle?"},
			{Role: "user", Content: "Nuestro producto reduce los costes operativos un veinte por ciento"},
		},
		EvaluationMode: true,
	})
	if err != nil {
		t.Fatalf("RespondEnhanced: %v", err)
	}

	if !resp.ConversationContinues {
		t.Fatal("conversation should continue")
	}
	if resp.RealTimeAnalysis == nil {
		t.Fatal("expected real-time analysis in evaluation mode")
	}
	if resp.RealTimeAnalysis.Tone != "profesional" {
		t.Fatalf("unexpected tone %q", resp.RealTimeAnalysis.Tone)
	}
}

func TestRespondEnhancedSkipsAnalysisOnFirstTurn(t *testing.T) {
	srv := fakeCompletionServer(t, "Hola, dígame.")

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	resp, err := svc.RespondEnhanced(EnhancedConversationRequest{
		Messages:       []HistoryTurn{{Role: "user", Content: "Hola"}},
		EvaluationMode: true,
	})
	if err != nil {
		t.Fatalf("RespondEnhanced: %v", err)
	}
	if resp.RealTimeAnalysis != nil {
		t.Fatal("single-message conversations must not be analyzed")
	}
}

func TestRespondEnhancedSkipsAnalysisOutsideEvaluationMode(t *testing.T) {
	srv := fakeCompletionServer(t, "ok")

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	resp, err := svc.RespondEnhanced(EnhancedConversationRequest{
		Messages: []HistoryTurn{
			{Role: "user", Content: "uno"},
			{Role: "assistant", Content: "dos"},
			{Role: "user", Content: "tres"},
		},
	})
	if err != nil {
		t.Fatalf("RespondEnhanced: %v", err)
	}
	if resp.RealTimeAnalysis != nil {
		t.Fatal("analysis should be nil when evaluation mode is off")
	}
}

func TestBuildEnhancedPromptLabelsDocuments(t *testing.T) {
	svc := &ConversationService{}
	prompt := svc.buildEnhancedPrompt(
		EnhancedScenario{Title: "Venta técnica", Description: "Cliente industrial", PromptInstructions: "Sé escéptico"},
		[]KnowledgeEntry{
			{Title: "Ficha de producto", Content: "El modelo X soporta 500 ciclos"},
			{Title: "Tarifas", Content: "El precio base es 1200 euros"},
		},
	)

	for _, want := range []string{
		"Escenario: Venta técnica. Cliente industrial",
		"Instrucciones del escenario: Sé escéptico",
		"[Documento 1: Ficha de producto]",
		"[Documento 2: Tarifas]",
		"contradice la base de conocimiento",
		"2-3 frases como máximo",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildEnhancedPromptWithoutKnowledge(t *testing.T) {
	svc := &ConversationService{}
	prompt := svc.buildEnhancedPrompt(EnhancedScenario{}, nil)
	if strings.Contains(prompt, "Base de conocimiento") {
		t.Fatalf("empty knowledge base should not be mentioned:\n%s", prompt)
	}
}

func TestAnalyzeLastUserTurnAccuracy(t *testing.T) {
	kb := []KnowledgeEntry{{Title: "Ficha", Content: "el modelo x soporta 500 ciclos de carga completos"}}

	messages := []HistoryTurn{
		{Role: "assistant", Content: "¿Qué ofrece?"},
		{Role: "user", Content: "Como le decía, el modelo x soporta 500 ciclos de carga completos y más"},
	}
	analysis := analyzeLastUserTurn(messages, kb)
	if analysis.KnowledgeAccuracy != "alta" {
		t.Fatalf("expected alta accuracy, got %q", analysis.KnowledgeAccuracy)
	}
	if len(analysis.Suggestions) != 2 || !strings.Contains(analysis.Suggestions[0], "tono profesional") {
		t.Fatalf("unexpected suggestions for alta accuracy: %v", analysis.Suggestions)
	}

	messages[1].Content = "Nuestro producto es el mejor del mercado sin duda"
	analysis = analyzeLastUserTurn(messages, kb)
	if analysis.KnowledgeAccuracy != "media" {
		t.Fatalf("expected media accuracy, got %q", analysis.KnowledgeAccuracy)
	}
	if !strings.Contains(analysis.Suggestions[0], "base de conocimiento") {
		t.Fatalf("media accuracy should suggest using the knowledge base: %v", analysis.Suggestions)
	}
}

func TestAnalyzeLastUserTurnTone(t *testing.T) {
	messages := []HistoryTurn{
		{Role: "assistant", Content: "¿Cuál es su propuesta?"},
		{Role: "user", Content: "Ni idea, me da igual lo que piense usted"},
	}
	analysis := analyzeLastUserTurn(messages, nil)
	if analysis.Tone != "negativo" {
		t.Fatalf("expected negativo tone, got %q", analysis.Tone)
	}
	if analysis.ResponseQuality != "mejorable" {
		t.Fatalf("negative tone must drag quality down, got %q", analysis.ResponseQuality)
	}
}

func TestAnalyzeLastUserTurnShortAnswer(t *testing.T) {
	messages := []HistoryTurn{
		{Role: "assistant", Content: "¿Por qué deberíamos contratarle?"},
		{Role: "user", Content: "Porque sí"},
	}
	analysis := analyzeLastUserTurn(messages, nil)
	if analysis.Tone != "profesional" {
		t.Fatalf("expected profesional tone, got %q", analysis.Tone)
	}
	if analysis.ResponseQuality != "mejorable" {
		t.Fatalf("answers under four words are mejorable, got %q", analysis.ResponseQuality)
	}
}

func TestAnalyzeLastUserTurnGoodAnswer(t *testing.T) {
	messages := []HistoryTurn{
		{Role: "assistant", Content: "¿Qué experiencia tiene?"},
		{Role: "user", Content: "Llevo cinco años liderando equipos comerciales en el sector tecnológico"},
	}
	analysis := analyzeLastUserTurn(messages, nil)
	if analysis.ResponseQuality != "buena" {
		t.Fatalf("expected buena quality, got %q", analysis.ResponseQuality)
	}
}

func TestRespondEnhancedUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewConversationService(testAIService(srv.URL), nil, nil)
	_, err := svc.RespondEnhanced(EnhancedConversationRequest{
		Messages: []HistoryTurn{{Role: "user", Content: "hola"}},
	})
	if err == nil {
		t.Fatal("expected error so the controller can attach the fallback reply")
	}
}
