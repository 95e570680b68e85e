package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/database"
	"testing"

	"gorm.io/gorm"
)

func newSessionFixture(t *testing.T, aiURL string) (*gorm.DB, *SessionService) {
	t.Helper()
	db := testDB(t)
	database.SeedDefaults(db)

	stats := NewStatsService(repository.NewStatsRepository(db), repository.NewUserRepository(db), nil)
	ach := NewAchievementService(repository.NewAchievementRepository(db), stats)
	eval := NewEvaluationService(testAIService(aiURL))
	svc := NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewScenarioRepository(db),
		eval,
		stats,
		ach,
	)
	return db, svc
}

func TestStartSessionResolvesScenarioAndDifficulty(t *testing.T) {
	_, svc := newSessionFixture(t, "http://127.0.0.1:0")

	session, err := svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call", Difficulty: "advanced"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.Status != model.SessionActive {
		t.Fatalf("expected active session, got %q", session.Status)
	}
	if session.Difficulty != model.DifficultyAdvanced {
		t.Fatalf("difficulty override ignored: %q", session.Difficulty)
	}
	if session.Scenario == nil || session.Scenario.Key != "sales-cold-call" {
		t.Fatal("session should carry its scenario")
	}

	// Invalid difficulty falls back to the scenario default.
	session, err = svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call", Difficulty: "nightmare"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.Difficulty != model.DifficultyIntermediate {
		t.Fatalf("expected scenario default difficulty, got %q", session.Difficulty)
	}

	if _, err := svc.Start(1, StartSessionRequest{ScenarioKey: "no-such-scenario"}); !errors.Is(err, util.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}
}

func TestAddMessageSequencesAndGuards(t *testing.T) {
	_, svc := newSessionFixture(t, "http://127.0.0.1:0")
	session, _ := svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call"})

	m1, err := svc.AddMessage(1, session.ID, model.MessageRoleUser, "Buenos días", "")
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	m2, err := svc.AddMessage(1, session.ID, model.MessageRoleAssistant, "No tengo tiempo", "Daniel")
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if m1.Sequence != 1 || m2.Sequence != 2 {
		t.Fatalf("unexpected sequences: %d, %d", m1.Sequence, m2.Sequence)
	}

	// Another user's session is invisible.
	if _, err := svc.AddMessage(2, session.ID, model.MessageRoleUser, "hola", ""); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign session, got %v", err)
	}

	if err := svc.Abandon(1, session.ID); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if _, err := svc.AddMessage(1, session.ID, model.MessageRoleUser, "hola", ""); !errors.Is(err, util.ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive after abandon, got %v", err)
	}
}

func TestCompleteSessionStoresEvaluationAndStats(t *testing.T) {
	ai := fakeCompletionServer(t, `{"score": 92, "accuracy": 88, "communication": 95,
		"areas_improvement": ["a"], "positive_aspects": ["b"], "suggestions": ["c"], "critical_errors": []}`)
	_, svc := newSessionFixture(t, ai.URL)

	session, _ := svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call"})
	svc.AddMessage(1, session.ID, model.MessageRoleUser, "Le llamo para presentarle nuestro producto", "")
	svc.AddMessage(1, session.ID, model.MessageRoleAssistant, "No tengo tiempo ahora", "Daniel")

	summary, err := svc.Complete(1, session.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if summary.Session.Status != model.SessionCompleted {
		t.Fatalf("expected completed status, got %q", summary.Session.Status)
	}
	if summary.Evaluation == nil || summary.Evaluation.Score != 92 || summary.Evaluation.Degraded {
		t.Fatalf("unexpected evaluation: %+v", summary.Evaluation)
	}
	if summary.XPEarned != 50+92/2 {
		t.Fatalf("expected %d xp, got %d", 50+92/2, summary.XPEarned)
	}

	st, _ := svc.Stats.StatsRepo.FindOrCreateByUserID(1)
	if st.TotalSessions != 1 || st.BestScore != 92 {
		t.Fatalf("stats not updated: %+v", st)
	}

	// first_session and high_score achievements come with the 92.
	views, err := svc.Achievements.GetUserAchievements(1)
	if err != nil {
		t.Fatalf("GetUserAchievements: %v", err)
	}
	earned := map[string]bool{}
	for _, v := range views {
		if v.EarnedAt != nil {
			earned[v.Code] = true
		}
	}
	if !earned["first_session"] || !earned["high_score"] {
		t.Fatalf("expected first_session and high_score earned, got %v", earned)
	}

	// A completed session cannot be completed or abandoned again.
	if _, err := svc.Complete(1, session.ID); !errors.Is(err, util.ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
	if err := svc.Abandon(1, session.ID); !errors.Is(err, util.ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestCompleteSessionDegradedEvaluation(t *testing.T) {
	// Unreachable AI endpoint: the rubric falls back instead of failing.
	_, svc := newSessionFixture(t, "http://127.0.0.1:0")

	session, _ := svc.Start(1, StartSessionRequest{ScenarioKey: "recruitment-interview"})
	svc.AddMessage(1, session.ID, model.MessageRoleUser, "Tengo cinco años de experiencia", "")

	summary, err := svc.Complete(1, session.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !summary.Evaluation.Degraded {
		t.Fatal("expected degraded evaluation")
	}
	if summary.Evaluation.Score != 70 {
		t.Fatalf("expected fallback score 70, got %d", summary.Evaluation.Score)
	}
}

func TestRecordMetricAndSummary(t *testing.T) {
	db, svc := newSessionFixture(t, "http://127.0.0.1:0")
	session, _ := svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call"})

	err := svc.RecordMetric(1, session.ID, &RealTimeAnalysis{
		KnowledgeAccuracy: "alta",
		Tone:              "profesional",
		ResponseQuality:   "buena",
	})
	if err != nil {
		t.Fatalf("RecordMetric: %v", err)
	}
	// Nil analysis is a silent no-op.
	if err := svc.RecordMetric(1, session.ID, nil); err != nil {
		t.Fatalf("nil RecordMetric: %v", err)
	}

	var count int64
	db.Model(&model.RealTimeMetric{}).Where("session_id = ?", session.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 stored metric, got %d", count)
	}

	svc.AddMessage(1, session.ID, model.MessageRoleUser, "hola qué tal está usted", "")
	summary, err := svc.GetSummary(1, session.ID)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.Evaluation != nil {
		t.Fatal("no evaluation expected before completion")
	}
	if len(summary.Messages) != 1 {
		t.Fatalf("expected 1 message in summary, got %d", len(summary.Messages))
	}
}

func TestSessionHistoryPagination(t *testing.T) {
	_, svc := newSessionFixture(t, "http://127.0.0.1:0")
	for i := 0; i < 5; i++ {
		if _, err := svc.Start(1, StartSessionRequest{ScenarioKey: "sales-cold-call"}); err != nil {
			t.Fatalf("Start %d: %v", i, err)
		}
	}
	svc.Start(2, StartSessionRequest{ScenarioKey: "sales-cold-call"})

	sessions, total, err := svc.History(1, 1, 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5 total sessions, got %d", total)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected page of 3, got %d", len(sessions))
	}

	sessions, _, _ = svc.History(1, 2, 3)
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions on page 2, got %d", len(sessions))
	}
}

func TestTranscriptSpeakers(t *testing.T) {
	got := transcript([]model.ConversationMessage{
		{Role: model.MessageRoleUser, Content: "hola"},
		{Role: model.MessageRoleAssistant, Content: "dígame"},
	})
	want := "Usuario: hola\nCliente: dígame\n"
	if got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}
