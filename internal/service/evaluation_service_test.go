package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEvaluateParsesModelRubric(t *testing.T) {
	rubricJSON := "```json\n" + `{
		"score": 85, "accuracy": 90, "communication": 80,
		"areas_improvement": ["cerrar mejor la venta"],
		"positive_aspects": ["buen uso de datos"],
		"suggestions": ["preguntar por el presupuesto"],
		"critical_errors": []
	}` + "\n```"
	srv := fakeCompletionServer(t, rubricJSON)

	svc := NewEvaluationService(testAIService(srv.URL))
	rubric := svc.Evaluate(EvaluationRequest{UserResponse: "Usuario: buenos días..."})

	if rubric.Degraded {
		t.Fatal("a parsed rubric must not be marked degraded")
	}
	if rubric.Score != 85 || rubric.Accuracy != 90 || rubric.Communication != 80 {
		t.Fatalf("unexpected scores: %d/%d/%d", rubric.Score, rubric.Accuracy, rubric.Communication)
	}
	if len(rubric.CriticalErrors) != 0 {
		t.Fatalf("expected empty critical errors, got %v", rubric.CriticalErrors)
	}
}

func TestEvaluateFallsBackOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewEvaluationService(testAIService(srv.URL))
	rubric := svc.Evaluate(EvaluationRequest{UserResponse: "hola"})
	assertFallbackRubric(t, rubric)
}

func TestEvaluateFallsBackOnGarbageOutput(t *testing.T) {
	srv := fakeCompletionServer(t, "Lo siento, no puedo evaluar esta conversación.")

	svc := NewEvaluationService(testAIService(srv.URL))
	rubric := svc.Evaluate(EvaluationRequest{UserResponse: "hola"})
	assertFallbackRubric(t, rubric)
}

func TestEvaluateFallsBackOnOutOfRangeScores(t *testing.T) {
	srv := fakeCompletionServer(t, `{"score": 140, "accuracy": 90, "communication": 80}`)

	svc := NewEvaluationService(testAIService(srv.URL))
	rubric := svc.Evaluate(EvaluationRequest{UserResponse: "hola"})
	assertFallbackRubric(t, rubric)
}

func assertFallbackRubric(t *testing.T, rubric *Rubric) {
	t.Helper()

	if !rubric.Degraded {
		t.Fatal("fallback rubric must be flagged as degraded")
	}
	if rubric.Score != 70 || rubric.Accuracy != 75 || rubric.Communication != 70 {
		t.Fatalf("unexpected fallback scores: %d/%d/%d", rubric.Score, rubric.Accuracy, rubric.Communication)
	}
	for name, items := range map[string][]string{
		"areas_improvement": rubric.AreasImprovement,
		"positive_aspects":  rubric.PositiveAspects,
		"suggestions":       rubric.Suggestions,
		"critical_errors":   rubric.CriticalErrors,
	} {
		if len(items) != 2 {
			t.Fatalf("fallback %s should carry two items, got %v", name, items)
		}
	}
}

func TestParseRubricNormalizesNilArrays(t *testing.T) {
	rubric, err := parseRubric(`{"score": 50, "accuracy": 50, "communication": 50}`)
	if err != nil {
		t.Fatalf("parseRubric: %v", err)
	}
	if rubric.AreasImprovement == nil || rubric.PositiveAspects == nil ||
		rubric.Suggestions == nil || rubric.CriticalErrors == nil {
		t.Fatal("nil arrays must be normalized to empty slices")
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"Aquí tienes el resultado: {\"a\":1} espero que sirva", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripCodeFences(c.in); got != c.want {
			t.Fatalf("stripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
