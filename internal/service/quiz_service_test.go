package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/llm"
)

type mockTraitRepo struct {
	byProfile map[string]domain.TraitProfile
	getErr    error
	upsertErr error
	upserts   int
}

func (m *mockTraitRepo) Upsert(_ context.Context, profile domain.TraitProfile) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.byProfile == nil {
		m.byProfile = map[string]domain.TraitProfile{}
	}
	m.byProfile[profile.ProfileID] = profile
	m.upserts++
	return nil
}

func (m *mockTraitRepo) GetByProfileID(_ context.Context, profileID string) (domain.TraitProfile, error) {
	if m.getErr != nil {
		return domain.TraitProfile{}, m.getErr
	}
	p, ok := m.byProfile[profileID]
	if !ok {
		return domain.TraitProfile{}, domain.ErrNotFound
	}
	return p, nil
}

func TestGetOrDefault_LazyCreatesCreativeDefaults(t *testing.T) {
	repo := &mockTraitRepo{}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	traits, err := svc.GetOrDefault(context.Background(), "creator-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traits.ID == "" {
		t.Fatalf("expected generated id for lazy default")
	}
	if traits.Openness != 60 || traits.CreativityIndex != 70 || traits.Neuroticism != 45 {
		t.Fatalf("expected creative defaults, got %+v", traits)
	}
	if traits.Confidence != 0.5 {
		t.Fatalf("expected default confidence 0.5, got %f", traits.Confidence)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected default to be persisted, got %d upserts", repo.upserts)
	}

	// Segundo acceso devuelve el persistido sin recrear.
	again, err := svc.GetOrDefault(context.Background(), "creator-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again.ID != traits.ID {
		t.Fatalf("expected stored profile on second access")
	}
	if repo.upserts != 1 {
		t.Fatalf("expected no extra upsert, got %d", repo.upserts)
	}
}

func TestGetOrDefault_PropagatesStoreErrors(t *testing.T) {
	repo := &mockTraitRepo{getErr: errors.New("db down")}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	if _, err := svc.GetOrDefault(context.Background(), "creator-1"); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestAnalyzeAndPersist_FallbackWithoutLLM(t *testing.T) {
	repo := &mockTraitRepo{}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	// 3 de 4 respuestas positivas (>3 en escala Likert).
	answers := map[string]interface{}{
		"q1": float64(5),
		"q2": float64(4),
		"q3": float64(4),
		"q4": float64(2),
	}
	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, answers)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if traits.Extraversion != 30+0.75*40 {
		t.Fatalf("expected extraversion scaled by positive ratio, got %f", traits.Extraversion)
	}
	if traits.Agreeableness != 40+0.75*30 {
		t.Fatalf("expected agreeableness scaled by positive ratio, got %f", traits.Agreeableness)
	}
	if traits.CreativityIndex != 60 || traits.RiskTolerance != 55 {
		t.Fatalf("expected fallback creative baseline, got %+v", traits)
	}
	if traits.CollaborationStyle != domain.StyleCollaborator {
		t.Fatalf("expected collaborator style default, got %q", traits.CollaborationStyle)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected persisted profile, got %d upserts", repo.upserts)
	}
}

func TestAnalyzeAndPersist_FallbackIgnoresNonNumericAnswers(t *testing.T) {
	repo := &mockTraitRepo{}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	answers := map[string]interface{}{
		"q1": "I love collaborating",
		"q2": float64(5),
	}
	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizWorkStyle, answers)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// Una positiva sobre dos respuestas.
	if traits.Extraversion != 30+0.5*40 {
		t.Fatalf("expected text answers to count in the total only, got %f", traits.Extraversion)
	}
}

func TestAnalyzeAndPersist_LLMScoresApplied(t *testing.T) {
	repo := &mockTraitRepo{}
	client := &llm.MockClient{Response: `{
		"openness": 85,
		"conscientiousness": 40,
		"extraversion": 70,
		"agreeableness": 65,
		"neuroticism": 30,
		"creativity_index": 92,
		"risk_tolerance": 77,
		"collaboration_style": "Leader",
		"communication_preference": "DIRECT",
		"work_pace": "fast",
		"feedback_style": "frequent",
		"confidence_score": 0.85
	}`}
	svc := NewQuizAnalysisService(client, repo, zap.NewNop())

	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, map[string]interface{}{"q1": float64(4)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traits.Openness != 85 || traits.CreativityIndex != 92 {
		t.Fatalf("expected llm scores applied, got %+v", traits)
	}
	if traits.CollaborationStyle != domain.StyleLeader {
		t.Fatalf("expected lowercased style, got %q", traits.CollaborationStyle)
	}
	if traits.CommunicationPreference != domain.CommDirect {
		t.Fatalf("expected lowercased preference, got %q", traits.CommunicationPreference)
	}
	if traits.Confidence != 0.85 {
		t.Fatalf("expected llm confidence, got %f", traits.Confidence)
	}
}

func TestAnalyzeAndPersist_ClampsOutOfRangeScores(t *testing.T) {
	repo := &mockTraitRepo{}
	client := &llm.MockClient{Response: `{
		"openness": 140,
		"conscientiousness": -10,
		"extraversion": 50,
		"agreeableness": 50,
		"neuroticism": 50,
		"creativity_index": 200,
		"risk_tolerance": 50,
		"confidence_score": 3.5
	}`}
	svc := NewQuizAnalysisService(client, repo, zap.NewNop())

	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, map[string]interface{}{"q1": float64(4)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traits.Openness != 100 || traits.Conscientiousness != 0 || traits.CreativityIndex != 100 {
		t.Fatalf("expected clamped trait scores, got %+v", traits)
	}
	if traits.Confidence != 1 {
		t.Fatalf("expected clamped confidence, got %f", traits.Confidence)
	}
	// Estilos ausentes en la respuesta conservan los previos.
	if traits.CollaborationStyle != domain.StyleCollaborator {
		t.Fatalf("expected default style kept when llm omits it, got %q", traits.CollaborationStyle)
	}
}

func TestAnalyzeAndPersist_PartialLLMResponseKeepsFallbackDefaults(t *testing.T) {
	repo := &mockTraitRepo{}
	client := &llm.MockClient{Response: `{"openness": 80}`}
	svc := NewQuizAnalysisService(client, repo, zap.NewNop())

	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, map[string]interface{}{"q1": float64(4)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traits.Openness != 80 {
		t.Fatalf("expected explicit score applied, got %f", traits.Openness)
	}
	// Los rasgos que el LLM no menciona heredan el analisis por reglas,
	// no caen a cero.
	if traits.Conscientiousness != 50 || traits.Neuroticism != 50 {
		t.Fatalf("expected rule defaults for omitted traits, got %+v", traits)
	}
	if traits.CreativityIndex != 60 || traits.RiskTolerance != 55 {
		t.Fatalf("expected creative baseline for omitted traits, got %+v", traits)
	}
	// Una de una respuesta positiva: ratio 1.0.
	if traits.Extraversion != 70 || traits.Agreeableness != 70 {
		t.Fatalf("expected ratio-scaled defaults for omitted traits, got %+v", traits)
	}
	if traits.Confidence != 0.6 {
		t.Fatalf("expected fallback confidence when omitted, got %f", traits.Confidence)
	}
	if traits.CollaborationStyle != domain.StyleCollaborator {
		t.Fatalf("expected default style, got %q", traits.CollaborationStyle)
	}
}

func TestAnalyzeAndPersist_LLMFailureFallsBack(t *testing.T) {
	repo := &mockTraitRepo{}
	client := &llm.MockClient{Err: errors.New("provider down")}
	svc := NewQuizAnalysisService(client, repo, zap.NewNop())

	traits, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, map[string]interface{}{"q1": float64(5)})
	if err != nil {
		t.Fatalf("expected fallback instead of error, got %v", err)
	}
	if traits.CreativityIndex != 60 {
		t.Fatalf("expected fallback baseline, got %+v", traits)
	}
}

func TestAnalyzeAndPersist_UpsertFailureSurfaces(t *testing.T) {
	repo := &mockTraitRepo{upsertErr: errors.New("db down")}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	if _, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, nil); err == nil {
		t.Fatalf("expected upsert error to surface")
	}
}

func TestAnalyzeAndPersist_SecondQuizKeepsProfileID(t *testing.T) {
	repo := &mockTraitRepo{}
	svc := NewQuizAnalysisService(nil, repo, zap.NewNop())

	first, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizBigFive, map[string]interface{}{"q1": float64(5)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.AnalyzeAndPersist(context.Background(), "creator-1", QuizCreativeStyle, map[string]interface{}{"q1": float64(1)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected stable trait profile id across quizzes, got %q vs %q", second.ID, first.ID)
	}
}
