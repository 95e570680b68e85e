package service

import (
	"roleplay_coach_backend/internal/model"
	"strings"
	"testing"
)

func TestLookupProfileKnownKey(t *testing.T) {
	p := LookupProfile("recruitment-interview")
	if p.Key != "recruitment-interview" {
		t.Fatalf("expected recruitment-interview profile, got %q", p.Key)
	}
	if p.Category != model.CategoryRecruitment {
		t.Fatalf("unexpected category %q", p.Category)
	}
	if p.Voice != "Sarah" {
		t.Fatalf("unexpected voice %q", p.Voice)
	}
}

func TestLookupProfileUnknownKeyFallsBack(t *testing.T) {
	for _, key := range []string{"", "does-not-exist", "SALES-COLD-CALL"} {
		p := LookupProfile(key)
		if p.Key != DefaultScenarioKey {
			t.Fatalf("key %q: expected fallback to %q, got %q", key, DefaultScenarioKey, p.Key)
		}
	}
}

func TestRoleFramingDefaultsToSales(t *testing.T) {
	framing := RoleFraming(model.ScenarioCategory("unknown"))
	if framing != roleFramings[model.CategorySales] {
		t.Fatalf("expected sales framing for unknown category, got %q", framing)
	}
}

func TestDifficultyAdjustmentDefaultsToIntermediate(t *testing.T) {
	if got := DifficultyAdjustment(model.Difficulty("extreme")); got != difficultyAdjustments[model.DifficultyIntermediate] {
		t.Fatalf("expected intermediate adjustment, got %q", got)
	}
	if got := DifficultyAdjustment(model.DifficultyAdvanced); !strings.Contains(got, "exigente") {
		t.Fatalf("advanced adjustment missing expected wording: %q", got)
	}
}

func TestBuildPromptContents(t *testing.T) {
	svc := &ConversationService{}
	profile := LookupProfile("recruitment-interview")
	prompt := svc.buildPrompt(profile, model.DifficultyAdvanced, "Candidato junior de marketing")

	for _, want := range []string{
		"entrevistadora de recursos humanos",
		profile.Persona,
		"Sobre el usuario: Candidato junior de marketing",
		difficultyAdjustments[model.DifficultyAdvanced],
		"2-3 frases como máximo",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}

	for _, objection := range profile.Objections {
		if !strings.Contains(prompt, objection) {
			t.Fatalf("prompt missing objection %q", objection)
		}
	}
	for _, topic := range profile.FollowUps {
		if !strings.Contains(prompt, topic) {
			t.Fatalf("prompt missing follow-up topic %q", topic)
		}
	}
}

func TestBuildPromptOmitsEmptyUserProfile(t *testing.T) {
	svc := &ConversationService{}
	prompt := svc.buildPrompt(LookupProfile("sales-cold-call"), model.DifficultyBeginner, "")
	if strings.Contains(prompt, "Sobre el usuario") {
		t.Fatalf("prompt should not carry an empty user profile section:\n%s", prompt)
	}
}
