package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/llm"
	"creator-match/internal/repository"
)

// Tipos de quiz soportados.
const (
	QuizBigFive                 = "big_five"
	QuizCreativeStyle           = "creative_style"
	QuizCollaborationPreference = "collaboration_preference"
	QuizWorkStyle               = "work_style"
)

// QuizAnalysisService usa el LLM para inferir rasgos desde respuestas de
// quiz. El LLM es un colaborador opcional: si no responde, cae en un
// analisis por reglas y el quiz nunca falla por eso.
type QuizAnalysisService struct {
	llmClient llm.LLMClient
	traits    repository.TraitProfileRepository
	logger    *zap.Logger
}

func NewQuizAnalysisService(
	llmClient llm.LLMClient,
	traits repository.TraitProfileRepository,
	logger *zap.Logger,
) *QuizAnalysisService {
	return &QuizAnalysisService{
		llmClient: llmClient,
		traits:    traits,
		logger:    logger,
	}
}

// GetOrDefault devuelve el perfil de rasgos del creador, creandolo con los
// defaults creativos en el primer acceso.
func (s *QuizAnalysisService) GetOrDefault(ctx context.Context, profileID string) (domain.TraitProfile, error) {
	traits, err := s.traits.GetByProfileID(ctx, profileID)
	if err == nil {
		return traits, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.TraitProfile{}, fmt.Errorf("get trait profile: %w", err)
	}

	traits = domain.DefaultTraitProfile(profileID)
	traits.ID = uuid.NewString()
	if err := s.traits.Upsert(ctx, traits); err != nil {
		return domain.TraitProfile{}, fmt.Errorf("persist default traits: %w", err)
	}
	return traits, nil
}

// traitScores es el resultado del analisis, con todos los campos resueltos.
type traitScores struct {
	Openness                float64 `json:"openness"`
	Conscientiousness       float64 `json:"conscientiousness"`
	Extraversion            float64 `json:"extraversion"`
	Agreeableness           float64 `json:"agreeableness"`
	Neuroticism             float64 `json:"neuroticism"`
	CreativityIndex         float64 `json:"creativity_index"`
	RiskTolerance           float64 `json:"risk_tolerance"`
	CollaborationStyle      string  `json:"collaboration_style"`
	CommunicationPreference string  `json:"communication_preference"`
	WorkPace                string  `json:"work_pace"`
	FeedbackStyle           string  `json:"feedback_style"`
	Confidence              float64 `json:"confidence_score"`
}

// llmTraitScores es el JSON tal como llega del LLM analista: punteros en
// los numericos para distinguir un campo ausente de un cero legitimo.
type llmTraitScores struct {
	Openness                *float64 `json:"openness"`
	Conscientiousness       *float64 `json:"conscientiousness"`
	Extraversion            *float64 `json:"extraversion"`
	Agreeableness           *float64 `json:"agreeableness"`
	Neuroticism             *float64 `json:"neuroticism"`
	CreativityIndex         *float64 `json:"creativity_index"`
	RiskTolerance           *float64 `json:"risk_tolerance"`
	CollaborationStyle      string   `json:"collaboration_style"`
	CommunicationPreference string   `json:"communication_preference"`
	WorkPace                string   `json:"work_pace"`
	FeedbackStyle           string   `json:"feedback_style"`
	Confidence              *float64 `json:"confidence_score"`
}

// AnalyzeAndPersist analiza las respuestas, actualiza el TraitProfile del
// perfil y lo devuelve ya acotado a sus rangos.
func (s *QuizAnalysisService) AnalyzeAndPersist(ctx context.Context, profileID, quizType string, answers map[string]interface{}) (domain.TraitProfile, error) {
	scores := s.analyze(ctx, quizType, answers)

	profile, err := s.traits.GetByProfileID(ctx, profileID)
	if err != nil {
		// Primer quiz del perfil: partimos de los defaults creativos.
		profile = domain.DefaultTraitProfile(profileID)
		profile.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	profile.Openness = scores.Openness
	profile.Conscientiousness = scores.Conscientiousness
	profile.Extraversion = scores.Extraversion
	profile.Agreeableness = scores.Agreeableness
	profile.Neuroticism = scores.Neuroticism
	profile.CreativityIndex = scores.CreativityIndex
	profile.RiskTolerance = scores.RiskTolerance
	if scores.CollaborationStyle != "" {
		profile.CollaborationStyle = strings.ToLower(scores.CollaborationStyle)
	}
	if scores.CommunicationPreference != "" {
		profile.CommunicationPreference = strings.ToLower(scores.CommunicationPreference)
	}
	if scores.WorkPace != "" {
		profile.WorkPace = strings.ToLower(scores.WorkPace)
	}
	if scores.FeedbackStyle != "" {
		profile.FeedbackStyle = strings.ToLower(scores.FeedbackStyle)
	}
	profile.Confidence = scores.Confidence
	profile.UpdatedAt = now
	profile.Clamp()

	if err := s.traits.Upsert(ctx, profile); err != nil {
		s.logger.Warn("trait profile upsert failed", zap.Error(err), zap.String("profile_id", profileID))
		return domain.TraitProfile{}, fmt.Errorf("trait profile upsert: %w", err)
	}

	return profile, nil
}

func (s *QuizAnalysisService) analyze(ctx context.Context, quizType string, answers map[string]interface{}) traitScores {
	if s.llmClient == nil {
		return fallbackAnalysis(answers)
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return fallbackAnalysis(answers)
	}

	prompt := fmt.Sprintf(`Eres un psicologo experto en evaluacion de personalidad creativa. Analiza estas respuestas de un quiz tipo %s y estima los rasgos en escala 0-100.

Respuestas:
%s

Devuelve SOLO un JSON con este formato:
{
  "openness": 0-100,
  "conscientiousness": 0-100,
  "extraversion": 0-100,
  "agreeableness": 0-100,
  "neuroticism": 0-100,
  "creativity_index": 0-100,
  "risk_tolerance": 0-100,
  "collaboration_style": "leader|collaborator|supporter|independent",
  "communication_preference": "direct|diplomatic|casual|formal",
  "work_pace": "fast|moderate|deliberate",
  "feedback_style": "frequent|milestone|minimal",
  "confidence_score": 0.0-1.0
}`, quizType, string(answersJSON))

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("llm quiz analysis failed, using rule fallback", zap.Error(err))
		return fallbackAnalysis(answers)
	}

	var wire llmTraitScores
	cleaned := extractFirstJSONObject(cleanLLMJSONResponse(raw))
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		s.logger.Warn("llm quiz analysis unparseable, using rule fallback", zap.Error(err))
		return fallbackAnalysis(answers)
	}

	// Respuesta parcial: los campos ausentes conservan el analisis por
	// reglas en vez de caer a cero.
	scores := fallbackAnalysis(answers)
	if wire.Openness != nil {
		scores.Openness = *wire.Openness
	}
	if wire.Conscientiousness != nil {
		scores.Conscientiousness = *wire.Conscientiousness
	}
	if wire.Extraversion != nil {
		scores.Extraversion = *wire.Extraversion
	}
	if wire.Agreeableness != nil {
		scores.Agreeableness = *wire.Agreeableness
	}
	if wire.Neuroticism != nil {
		scores.Neuroticism = *wire.Neuroticism
	}
	if wire.CreativityIndex != nil {
		scores.CreativityIndex = *wire.CreativityIndex
	}
	if wire.RiskTolerance != nil {
		scores.RiskTolerance = *wire.RiskTolerance
	}
	if wire.Confidence != nil {
		scores.Confidence = *wire.Confidence
	}
	if wire.CollaborationStyle != "" {
		scores.CollaborationStyle = wire.CollaborationStyle
	}
	if wire.CommunicationPreference != "" {
		scores.CommunicationPreference = wire.CommunicationPreference
	}
	if wire.WorkPace != "" {
		scores.WorkPace = wire.WorkPace
	}
	if wire.FeedbackStyle != "" {
		scores.FeedbackStyle = wire.FeedbackStyle
	}
	return scores
}

// fallbackAnalysis es el analisis por reglas cuando el LLM no esta.
// Asume creadores algo por encima del promedio en creatividad y ajusta
// extraversion y amabilidad segun la proporcion de respuestas positivas.
func fallbackAnalysis(answers map[string]interface{}) traitScores {
	scores := traitScores{
		Openness:                50,
		Conscientiousness:       50,
		Extraversion:            50,
		Agreeableness:           50,
		Neuroticism:             50,
		CreativityIndex:         60,
		RiskTolerance:           55,
		CollaborationStyle:      domain.StyleCollaborator,
		CommunicationPreference: domain.CommCasual,
		WorkPace:                domain.PaceModerate,
		FeedbackStyle:           domain.FeedbackMilestone,
		Confidence:              0.6,
	}

	if len(answers) == 0 {
		return scores
	}

	positive := 0
	for _, answer := range answers {
		switch n := answer.(type) {
		case float64:
			if n > 3 {
				positive++
			}
		case int:
			if n > 3 {
				positive++
			}
		}
	}

	ratio := float64(positive) / float64(len(answers))
	scores.Extraversion = 30 + ratio*40
	scores.Agreeableness = 40 + ratio*30

	return scores
}
