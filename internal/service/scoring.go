package service

import (
	"creator-match/internal/domain"
)

// ScoringEngine encapsula el calculo puro de compatibilidad entre perfiles.
// No tiene estado ni efectos: mismas entradas, mismos floats.
type ScoringEngine struct{}

// DefaultScoringEngine permite uso directo sin instanciar.
var DefaultScoringEngine = ScoringEngine{}

// Pesos fijos por rasgo; suman 1.0.
var traitWeights = []struct {
	weight float64
	value  func(domain.TraitProfile) float64
	trait  string
}{
	{0.15, func(t domain.TraitProfile) float64 { return t.Openness }, "openness"},
	{0.10, func(t domain.TraitProfile) float64 { return t.Conscientiousness }, "conscientiousness"},
	{0.15, func(t domain.TraitProfile) float64 { return t.Extraversion }, "extraversion"},
	{0.20, func(t domain.TraitProfile) float64 { return t.Agreeableness }, "agreeableness"},
	{0.10, func(t domain.TraitProfile) float64 { return t.Neuroticism }, "neuroticism"},
	{0.20, func(t domain.TraitProfile) float64 { return t.CreativityIndex }, "creativity_index"},
	{0.10, func(t domain.TraitProfile) float64 { return t.RiskTolerance }, "risk_tolerance"},
}

// Matriz simetrica de afinidad entre estilos de colaboracion. Los pares no
// listados valen 0.5.
var styleMatrix = map[string]float64{
	styleKey(domain.StyleLeader, domain.StyleSupporter):          0.9,
	styleKey(domain.StyleLeader, domain.StyleCollaborator):       0.7,
	styleKey(domain.StyleCollaborator, domain.StyleCollaborator): 0.8,
	styleKey(domain.StyleCollaborator, domain.StyleSupporter):    0.8,
	styleKey(domain.StyleIndependent, domain.StyleIndependent):   0.3,
}

func styleKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// PersonalityScore calcula la compatibilidad de personalidad en [0,1].
// Por rasgo: similarity = max(0, 100-|a-b|)/100, con bono de amabilidad
// mutua y castigo por neuroticismo de cualquiera de los dos. Al total se
// suma hasta 0.1 por afinidad de estilos. Simetrica por construccion.
func (ScoringEngine) PersonalityScore(a, b domain.TraitProfile) float64 {
	total := 0.0
	for _, tw := range traitWeights {
		av := clampTrait(tw.value(a))
		bv := clampTrait(tw.value(b))

		diff := av - bv
		if diff < 0 {
			diff = -diff
		}
		similarity := (100 - diff) / 100
		if similarity < 0 {
			similarity = 0
		}

		switch tw.trait {
		case "agreeableness":
			// Amabilidad alta en ambos compone, no solo promedia.
			lo := av
			if bv < lo {
				lo = bv
			}
			similarity += lo / 100 * 0.2
		case "neuroticism":
			// La inestabilidad de cualquiera arrastra el score.
			hi := av
			if bv > hi {
				hi = bv
			}
			similarity -= hi / 100 * 0.1
		}

		total += similarity * tw.weight
	}

	total += styleBonus(a.CollaborationStyle, b.CollaborationStyle) * 0.1

	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

func styleBonus(a, b string) float64 {
	if v, ok := styleMatrix[styleKey(a, b)]; ok {
		return v
	}
	return 0.5
}

// SkillComplementarity mide que tan bien se complementan las habilidades:
// 0.2 por cruce de disciplinas mas cercania de niveles de experiencia.
func (ScoringEngine) SkillComplementarity(p, q domain.CandidateProfile) float64 {
	score := 0.0
	if p.Category != q.Category {
		score += 0.2
	}

	gap := p.ExperienceLevel.Rank() - q.ExperienceLevel.Rank()
	if gap < 0 {
		gap = -gap
	}
	expScore := 1.0 - float64(gap)*0.2
	if expScore < 0 {
		expScore = 0
	}
	score += expScore

	if score > 1 {
		return 1
	}
	return score
}

// ExperienceCompatibility es un escalon discreto sobre la brecha de niveles:
// los cuatro niveles son discretos, la funcion tambien.
func (ScoringEngine) ExperienceCompatibility(p, q domain.CandidateProfile) float64 {
	gap := p.ExperienceLevel.Rank() - q.ExperienceLevel.Rank()
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.5
	default:
		return 0.2
	}
}

func clampTrait(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
