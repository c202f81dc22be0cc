package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/llm"
)

// Explainer produce el texto de "por que" de un match. La implementacion
// generativa es opcional: el motor funciona igual sin ella.
type Explainer interface {
	Explain(ctx context.Context, self, candidate domain.CandidateProfile, scores ScoredCandidate) string
}

// ExplanationEngine es la escalera de reglas deterministica. Cada regla
// agrega una clausula si su condicion aplica; sin reglas, frase generica.
type ExplanationEngine struct{}

// DefaultExplanationEngine permite uso directo sin instanciar.
var DefaultExplanationEngine = ExplanationEngine{}

func (ExplanationEngine) Explain(_ context.Context, self, candidate domain.CandidateProfile, scores ScoredCandidate) string {
	var clauses []string

	switch {
	case scores.Personality > 0.7:
		clauses = append(clauses, "Strong personality compatibility for smooth collaboration")
	case scores.Personality >= 0.5:
		clauses = append(clauses, "Good personality balance with complementary traits")
	}

	if self.Category != candidate.Category {
		clauses = append(clauses, fmt.Sprintf("Cross-disciplinary potential between %s and %s",
			categoryLabel(self.Category), categoryLabel(candidate.Category)))
	} else if scores.Skill > 0.6 {
		clauses = append(clauses, "Strong skill alignment for focused collaboration")
	}

	if self.ExperienceLevel == candidate.ExperienceLevel {
		clauses = append(clauses, fmt.Sprintf("Both at %s level for balanced partnership", self.ExperienceLevel))
	} else {
		clauses = append(clauses, fmt.Sprintf("Complementary experience levels (%s + %s) for mutual learning",
			self.ExperienceLevel, candidate.ExperienceLevel))
	}

	if len(clauses) == 0 {
		clauses = append(clauses, "Potential for creative collaboration based on profile analysis")
	}

	return strings.Join(clauses, ". ") + "."
}

func categoryLabel(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}

// LLMExplainer pide al LLM una explicacion mas rica. Ante cualquier fallo
// o timeout cae en la escalera deterministica; nunca es un camino de error.
type LLMExplainer struct {
	client   llm.LLMClient
	fallback ExplanationEngine
	logger   *zap.Logger
}

func NewLLMExplainer(client llm.LLMClient, logger *zap.Logger) *LLMExplainer {
	return &LLMExplainer{client: client, logger: logger}
}

func (e *LLMExplainer) Explain(ctx context.Context, self, candidate domain.CandidateProfile, scores ScoredCandidate) string {
	if e.client == nil {
		return e.fallback.Explain(ctx, self, candidate, scores)
	}

	prompt := fmt.Sprintf(`Eres un casamentero de colaboraciones creativas. Explica en una o dos frases en ingles por que estos dos creadores son compatibles.

Creator 1: category=%s, experience=%s
Creator 2: category=%s, experience=%s
Scores: personality=%.2f, skill=%.2f, experience=%.2f

Devuelve SOLO un JSON: {"explanation": "..."}`,
		self.Category, self.ExperienceLevel,
		candidate.Category, candidate.ExperienceLevel,
		scores.Personality, scores.Skill, scores.Experience,
	)

	raw, err := e.client.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn("llm explanation failed, using rule ladder", zap.Error(err))
		return e.fallback.Explain(ctx, self, candidate, scores)
	}

	var parsed struct {
		Explanation string `json:"explanation"`
	}
	cleaned := extractFirstJSONObject(cleanLLMJSONResponse(raw))
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil || strings.TrimSpace(parsed.Explanation) == "" {
		e.logger.Warn("llm explanation unparseable, using rule ladder", zap.String("raw", raw))
		return e.fallback.Explain(ctx, self, candidate, scores)
	}

	return strings.TrimSpace(parsed.Explanation)
}

// Combinaciones de categorias con tipos de proyecto tipicos.
var collaborationCombos = map[string][]string{
	comboKey(domain.CategoryVisualArts, domain.CategoryPerformingArts): {"music_video", "album_artwork", "concert_visuals"},
	comboKey(domain.CategoryVisualArts, domain.CategoryLiteraryArts):   {"book_illustration", "graphic_novel", "poetry_art"},
	comboKey(domain.CategoryPerformingArts, domain.CategoryMediaArts):  {"music_video", "podcast", "live_stream"},
	comboKey(domain.CategoryDigitalArts, domain.CategoryVisualArts):    {"digital_gallery", "nft_collection", "app_design"},
	comboKey(domain.CategoryMediaArts, domain.CategoryLiteraryArts):    {"documentary", "storytelling_video", "blog_content"},
}

var generalCollaborationTypes = []string{
	"creative_project", "skill_exchange", "portfolio_collaboration", "brand_partnership",
}

func comboKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// SuggestCollaborationTypes arma los tipos sugeridos para el par: los
// combos especificos de sus categorias mas los genericos, sin duplicados
// y en orden estable.
func SuggestCollaborationTypes(a, b domain.CandidateProfile) []string {
	seen := map[string]struct{}{}
	var types []string
	for _, t := range append(append([]string{}, collaborationCombos[comboKey(a.Category, b.Category)]...), generalCollaborationTypes...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}
