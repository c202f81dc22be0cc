package service

import (
	"context"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"creator-match/internal/domain"
	"creator-match/internal/repository"
)

// CandidatePoolService arma el pool de candidatos elegibles para una
// pasada de matching. Falla suave: si el store no responde, devuelve pool
// vacio en lugar de propagar el error (sin sugerencias no es un error).
type CandidatePoolService struct {
	candidates   repository.CandidateRepository
	matches      repository.MatchRepository
	logger       *zap.Logger
	queryTimeout time.Duration
}

func NewCandidatePoolService(
	candidates repository.CandidateRepository,
	matches repository.MatchRepository,
	logger *zap.Logger,
) *CandidatePoolService {
	return &CandidatePoolService{
		candidates:   candidates,
		matches:      matches,
		logger:       logger,
		queryTimeout: 3 * time.Second,
	}
}

// GeneratePool devuelve hasta poolCap candidatos validados y activos,
// excluyendo al solicitante, los perfiles ya emparejados en registros
// vigentes y los ids extra pedidos. Los candidatos de categorias
// complementarias van primero; el resto completa los cupos.
// selfVector, si no es nil, ordena la consulta por cercania de rasgos.
func (s *CandidatePoolService) GeneratePool(ctx context.Context, self domain.CandidateProfile, selfVector *pgvector.Vector, exclude []string, poolCap int) []domain.CandidateProfile {
	if poolCap <= 0 {
		return []domain.CandidateProfile{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	excluded := map[string]struct{}{self.ID: {}}
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	partners, err := s.matches.ActivePartnerIDs(ctx, self.ID, time.Now().UTC())
	if err != nil {
		s.logger.Warn("active partners lookup failed, returning empty pool",
			zap.Error(err), zap.String("profile_id", self.ID))
		return []domain.CandidateProfile{}
	}
	for _, id := range partners {
		excluded[id] = struct{}{}
	}

	excludeIDs := make([]string, 0, len(excluded))
	for id := range excluded {
		excludeIDs = append(excludeIDs, id)
	}

	// Pedimos de mas para poder priorizar complementarios sin quedarnos cortos.
	found, err := s.candidates.QueryValidatedActive(ctx, excludeIDs, selfVector, poolCap*2)
	if err != nil {
		s.logger.Warn("candidate query failed, returning empty pool",
			zap.Error(err), zap.String("profile_id", self.ID))
		return []domain.CandidateProfile{}
	}

	complementary := map[string]struct{}{}
	for _, cat := range domain.ComplementaryCategories(self.Category) {
		complementary[cat] = struct{}{}
	}

	var priority, others []domain.CandidateProfile
	for _, c := range found {
		if _, ok := complementary[c.Category]; ok {
			priority = append(priority, c)
		} else {
			others = append(others, c)
		}
	}

	pool := make([]domain.CandidateProfile, 0, poolCap)
	pool = append(pool, priority...)
	pool = append(pool, others...)
	if len(pool) > poolCap {
		pool = pool[:poolCap]
	}
	return pool
}
