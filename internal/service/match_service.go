package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/email"
	"creator-match/internal/repository"
)

// MatchService es el dueno del ciclo de vida de los MatchRecords: genera
// sugerencias (pool -> ranking -> explicacion -> persistencia) y procesa
// las acciones de cada lado hasta el match mutuo.
type MatchService struct {
	candidates repository.CandidateRepository
	traits     repository.TraitProfileRepository
	matches    repository.MatchRepository
	pool       *CandidatePoolService
	ranker     MatchRanker
	explainer  Explainer
	sender     email.Sender
	logger     *zap.Logger

	poolCap      int
	minThreshold float64
	expiryWindow time.Duration
}

func NewMatchService(
	candidates repository.CandidateRepository,
	traits repository.TraitProfileRepository,
	matches repository.MatchRepository,
	pool *CandidatePoolService,
	ranker MatchRanker,
	explainer Explainer,
	sender email.Sender,
	logger *zap.Logger,
	poolCap int,
	minThreshold float64,
	expiryWindow time.Duration,
) *MatchService {
	if poolCap <= 0 {
		poolCap = 50
	}
	if minThreshold <= 0 {
		minThreshold = DefaultMinThreshold
	}
	if expiryWindow <= 0 {
		expiryWindow = 30 * 24 * time.Hour
	}
	return &MatchService{
		candidates:   candidates,
		traits:       traits,
		matches:      matches,
		pool:         pool,
		ranker:       ranker,
		explainer:    explainer,
		sender:       sender,
		logger:       logger,
		poolCap:      poolCap,
		minThreshold: minThreshold,
		expiryWindow: expiryWindow,
	}
}

// MatchSuggestion es la vista de una sugerencia recien generada.
type MatchSuggestion struct {
	MatchID            string   `json:"match_id"`
	CandidateID        string   `json:"candidate_id"`
	CandidateName      string   `json:"candidate_name"`
	CompatibilityScore float64  `json:"compatibility_score"`
	PersonalityScore   float64  `json:"personality_score"`
	SkillScore         float64  `json:"skill_score"`
	ExperienceScore    float64  `json:"experience_score"`
	Explanation        string   `json:"explanation"`
	SuggestedTypes     []string `json:"suggested_types"`
}

// GenerateMatches produce hasta limit sugerencias para el perfil y las
// persiste con ambos lados pending. Un pool vacio no es un error: devuelve
// lista vacia.
func (s *MatchService) GenerateMatches(ctx context.Context, profileID string, limit int) ([]MatchSuggestion, error) {
	self, err := s.candidates.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get requesting profile: %w", err)
	}

	selfTraits := s.traitsOrDefault(ctx, profileID, true)
	vec := pgvector.NewVector(selfTraits.TraitVector())

	pool := s.pool.GeneratePool(ctx, self, &vec, nil, s.poolCap)
	if len(pool) == 0 {
		return []MatchSuggestion{}, nil
	}

	poolWithTraits := make([]PoolCandidate, 0, len(pool))
	for _, c := range pool {
		poolWithTraits = append(poolWithTraits, PoolCandidate{
			Profile: c,
			Traits:  s.traitsOrDefault(ctx, c.ID, false),
		})
	}

	ranked := s.ranker.Rank(ctx, self, selfTraits, poolWithTraits, limit, s.minThreshold)

	now := time.Now().UTC()
	suggestions := make([]MatchSuggestion, 0, len(ranked))
	for _, sc := range ranked {
		explanation := s.explainer.Explain(ctx, self, sc.Candidate, sc)
		types := SuggestCollaborationTypes(self, sc.Candidate)

		profileA, profileB := domain.OrderPair(profileID, sc.Candidate.ID)
		record := domain.MatchRecord{
			ID:                 uuid.NewString(),
			PairKey:            domain.PairKey(profileID, sc.Candidate.ID),
			ProfileA:           profileA,
			ProfileB:           profileB,
			CompatibilityScore: sc.Compatibility,
			PersonalityScore:   sc.Personality,
			SkillScore:         sc.Skill,
			ExperienceScore:    sc.Experience,
			Explanation:        explanation,
			SuggestedTypes:     types,
			StatusA:            domain.MatchPending,
			StatusB:            domain.MatchPending,
			CreatedAt:          now,
			ExpiresAt:          now.Add(s.expiryWindow),
		}

		if err := s.matches.Create(ctx, record); err != nil {
			if errors.Is(err, domain.ErrDuplicatePair) {
				// Carrera con otra generacion para el mismo par: la existente manda.
				continue
			}
			s.logger.Warn("create match failed", zap.Error(err),
				zap.String("pair_key", record.PairKey))
			continue
		}

		suggestions = append(suggestions, MatchSuggestion{
			MatchID:            record.ID,
			CandidateID:        sc.Candidate.ID,
			CandidateName:      sc.Candidate.DisplayName,
			CompatibilityScore: sc.Compatibility,
			PersonalityScore:   sc.Personality,
			SkillScore:         sc.Skill,
			ExperienceScore:    sc.Experience,
			Explanation:        explanation,
			SuggestedTypes:     types,
		})
	}

	return suggestions, nil
}

// traitsOrDefault devuelve los rasgos del perfil, o el perfil por defecto
// creativo si nunca respondio un quiz. Con persist, el default queda
// guardado (creacion perezosa al primer acceso).
func (s *MatchService) traitsOrDefault(ctx context.Context, profileID string, persist bool) domain.TraitProfile {
	traits, err := s.traits.GetByProfileID(ctx, profileID)
	if err == nil {
		return traits
	}

	traits = domain.DefaultTraitProfile(profileID)
	traits.ID = uuid.NewString()
	if persist {
		if err := s.traits.Upsert(ctx, traits); err != nil {
			s.logger.Warn("persist default traits failed", zap.Error(err),
				zap.String("profile_id", profileID))
		}
	}
	return traits
}

// MarkViewed marca la sugerencia como vista por el actor. Idempotente.
func (s *MatchService) MarkViewed(ctx context.Context, actorID, matchID string) (domain.MatchRecord, error) {
	record, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return domain.MatchRecord{}, err
	}

	isA, ok := record.SideOf(actorID)
	if !ok {
		return domain.MatchRecord{}, domain.ErrNotAuthorized
	}

	return s.matches.MarkViewed(ctx, matchID, isA, time.Now().UTC())
}

// RespondResult es el resultado de un like/pass.
type RespondResult struct {
	Status        domain.MatchStatus `json:"status"`
	IsMutualMatch bool               `json:"is_mutual_match"`
}

// Respond registra like o pass del actor y evalua mutualidad de forma
// atomica. Repetir la accion sobre un lado resuelto devuelve el estado
// actual sin error. Ante match mutuo notifica a ambos por correo, sin
// bloquear la respuesta.
func (s *MatchService) Respond(ctx context.Context, actorID, matchID string, action domain.MatchAction) (RespondResult, error) {
	if action != domain.ActionLike && action != domain.ActionPass {
		return RespondResult{}, fmt.Errorf("unknown action %q", action)
	}

	record, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return RespondResult{}, err
	}

	isA, ok := record.SideOf(actorID)
	if !ok {
		return RespondResult{}, domain.ErrNotAuthorized
	}

	updated, mutual, err := s.matches.Respond(ctx, matchID, isA, action, time.Now().UTC())
	if err != nil {
		return RespondResult{}, err
	}

	if mutual {
		go s.notifyMutualMatch(updated)
	}

	status, _ := updated.StatusFor(actorID)
	return RespondResult{Status: status, IsMutualMatch: mutual}, nil
}

func (s *MatchService) notifyMutualMatch(record domain.MatchRecord) {
	if s.sender == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, pair := range [][2]string{{record.ProfileA, record.ProfileB}, {record.ProfileB, record.ProfileA}} {
		to, err := s.candidates.GetByID(ctx, pair[0])
		if err != nil {
			continue
		}
		partner, err := s.candidates.GetByID(ctx, pair[1])
		if err != nil {
			continue
		}
		if err := s.sender.SendMutualMatchNotice(ctx, to.ContactEmail, partner.DisplayName, record.Explanation); err != nil {
			s.logger.Warn("mutual match notice failed", zap.Error(err),
				zap.String("match_id", record.ID), zap.String("profile_id", pair[0]))
		}
	}
}

// MatchView es la proyeccion de un MatchRecord relativa al que la consulta.
type MatchView struct {
	ID                 string             `json:"id"`
	PartnerID          string             `json:"partner_id"`
	CompatibilityScore float64            `json:"compatibility_score"`
	PersonalityScore   float64            `json:"personality_score"`
	SkillScore         float64            `json:"skill_score"`
	ExperienceScore    float64            `json:"experience_score"`
	Explanation        string             `json:"explanation"`
	SuggestedTypes     []string           `json:"suggested_types"`
	Status             domain.MatchStatus `json:"status"`
	IsMutualMatch      bool               `json:"is_mutual_match"`
	CreatedAt          time.Time          `json:"created_at"`
	MatchedAt          *time.Time         `json:"matched_at,omitempty"`
	ExpiresAt          time.Time          `json:"expires_at"`
}

// List devuelve los matches del perfil paginados, opcionalmente filtrados
// por el estado del lado del perfil.
func (s *MatchService) List(ctx context.Context, profileID string, status domain.MatchStatus, page, pageSize int) ([]MatchView, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	records, err := s.matches.ListForProfile(ctx, profileID, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	views := make([]MatchView, 0, len(records))
	for _, r := range records {
		st, _ := r.StatusFor(profileID)
		views = append(views, MatchView{
			ID:                 r.ID,
			PartnerID:          r.OtherProfile(profileID),
			CompatibilityScore: r.CompatibilityScore,
			PersonalityScore:   r.PersonalityScore,
			SkillScore:         r.SkillScore,
			ExperienceScore:    r.ExperienceScore,
			Explanation:        r.Explanation,
			SuggestedTypes:     r.SuggestedTypes,
			Status:             st,
			IsMutualMatch:      r.IsMutual(),
			CreatedAt:          r.CreatedAt,
			MatchedAt:          r.MatchedAt,
			ExpiresAt:          r.ExpiresAt,
		})
	}

	return views, nil
}
