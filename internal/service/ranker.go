package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"creator-match/internal/domain"
)

// DefaultMinThreshold es el corte minimo de compatibilidad para sugerir.
const DefaultMinThreshold = 0.3

// PoolCandidate es un candidato del pool con sus rasgos ya resueltos
// (perfil por defecto si nunca respondio un quiz).
type PoolCandidate struct {
	Profile domain.CandidateProfile
	Traits  domain.TraitProfile
}

// ScoredCandidate es el resultado de puntuar un candidato del pool.
type ScoredCandidate struct {
	Candidate domain.CandidateProfile `json:"candidate"`

	Compatibility float64 `json:"compatibility_score"`
	Personality   float64 `json:"personality_score"`
	Skill         float64 `json:"skill_score"`
	Experience    float64 `json:"experience_score"`
}

// MatchRanker combina los sub-scores en una lista ordenada. Es una
// transformacion pura sobre el pool: no toca estado persistente.
type MatchRanker struct {
	scorer      ScoringEngine
	parallelism int
}

func NewMatchRanker(parallelism int) MatchRanker {
	if parallelism <= 0 {
		parallelism = 8
	}
	return MatchRanker{parallelism: parallelism}
}

// Rank puntua cada candidato (personalidad 0.5, habilidades 0.3,
// experiencia 0.2), descarta los que quedan bajo minThreshold, ordena
// descendente con desempate por id de candidato y trunca a limit.
// El scoring por candidato es independiente y corre en paralelo.
func (r MatchRanker) Rank(ctx context.Context, self domain.CandidateProfile, selfTraits domain.TraitProfile, pool []PoolCandidate, limit int, minThreshold float64) []ScoredCandidate {
	if len(pool) == 0 || limit <= 0 {
		return []ScoredCandidate{}
	}

	scored := make([]ScoredCandidate, len(pool))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, pc := range pool {
		g.Go(func() error {
			personality := r.scorer.PersonalityScore(selfTraits, pc.Traits)
			skill := r.scorer.SkillComplementarity(self, pc.Profile)
			experience := r.scorer.ExperienceCompatibility(self, pc.Profile)

			scored[i] = ScoredCandidate{
				Candidate:     pc.Profile,
				Compatibility: personality*0.5 + skill*0.3 + experience*0.2,
				Personality:   personality,
				Skill:         skill,
				Experience:    experience,
			}
			return nil
		})
	}
	// Los workers no devuelven error; Wait solo sincroniza.
	_ = g.Wait()

	kept := scored[:0]
	for _, s := range scored {
		if s.Compatibility >= minThreshold {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Compatibility != kept[j].Compatibility {
			return kept[i].Compatibility > kept[j].Compatibility
		}
		return kept[i].Candidate.ID < kept[j].Candidate.ID
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
