package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"creator-match/internal/domain"
)

type mockCandidateRepo struct {
	byID        map[string]domain.CandidateProfile
	getErr      error
	queryData   []domain.CandidateProfile
	queryErr    error
	lastExclude []string
	lastNearTo  *pgvector.Vector
	lastLimit   int
}

func (m *mockCandidateRepo) GetByID(_ context.Context, profileID string) (domain.CandidateProfile, error) {
	if m.getErr != nil {
		return domain.CandidateProfile{}, m.getErr
	}
	c, ok := m.byID[profileID]
	if !ok {
		return domain.CandidateProfile{}, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCandidateRepo) QueryValidatedActive(_ context.Context, exclude []string, nearTo *pgvector.Vector, limit int) ([]domain.CandidateProfile, error) {
	m.lastExclude = exclude
	m.lastNearTo = nearTo
	m.lastLimit = limit
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.queryData, nil
}

type mockMatchRepo struct {
	created     []domain.MatchRecord
	createErr   error
	createErrs  map[string]error
	byID        map[string]domain.MatchRecord
	listData    []domain.MatchRecord
	listErr     error
	partners    []string
	partnersErr error

	respondRecord domain.MatchRecord
	respondMutual bool
	respondErr    error
	lastRespondID string
	lastIsA       bool
	lastAction    domain.MatchAction
}

func (m *mockMatchRepo) Create(_ context.Context, record domain.MatchRecord) error {
	if err, ok := m.createErrs[record.PairKey]; ok {
		return err
	}
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, record)
	return nil
}

func (m *mockMatchRepo) GetByID(_ context.Context, id string) (domain.MatchRecord, error) {
	r, ok := m.byID[id]
	if !ok {
		return domain.MatchRecord{}, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockMatchRepo) ListForProfile(_ context.Context, _ string, _ domain.MatchStatus, _, _ int) ([]domain.MatchRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listData, nil
}

func (m *mockMatchRepo) ActivePartnerIDs(_ context.Context, _ string, _ time.Time) ([]string, error) {
	if m.partnersErr != nil {
		return nil, m.partnersErr
	}
	return m.partners, nil
}

func (m *mockMatchRepo) MarkViewed(_ context.Context, id string, isA bool, now time.Time) (domain.MatchRecord, error) {
	r, ok := m.byID[id]
	if !ok {
		return domain.MatchRecord{}, domain.ErrNotFound
	}
	if isA {
		if r.StatusA == domain.MatchPending {
			r.StatusA = domain.MatchViewed
			r.ViewedAtA = &now
		}
	} else {
		if r.StatusB == domain.MatchPending {
			r.StatusB = domain.MatchViewed
			r.ViewedAtB = &now
		}
	}
	m.byID[id] = r
	return r, nil
}

func (m *mockMatchRepo) Respond(_ context.Context, id string, isA bool, action domain.MatchAction, _ time.Time) (domain.MatchRecord, bool, error) {
	m.lastRespondID = id
	m.lastIsA = isA
	m.lastAction = action
	if m.respondErr != nil {
		return domain.MatchRecord{}, false, m.respondErr
	}
	return m.respondRecord, m.respondMutual, nil
}

func testSelf() domain.CandidateProfile {
	return domain.CandidateProfile{
		ID:              "self",
		DisplayName:     "Self",
		Category:        domain.CategoryVisualArts,
		ExperienceLevel: domain.ExperienceIntermediate,
		IsValidated:     true,
		IsActive:        true,
	}
}

func TestGeneratePool_ExcludesSelfAndActivePartners(t *testing.T) {
	candidates := &mockCandidateRepo{
		queryData: []domain.CandidateProfile{
			{ID: "c1", Category: domain.CategoryDesign},
		},
	}
	matches := &mockMatchRepo{partners: []string{"p1", "p2"}}
	svc := NewCandidatePoolService(candidates, matches, zap.NewNop())

	svc.GeneratePool(context.Background(), testSelf(), nil, []string{"extra"}, 10)

	excluded := map[string]bool{}
	for _, id := range candidates.lastExclude {
		excluded[id] = true
	}
	for _, id := range []string{"self", "p1", "p2", "extra"} {
		if !excluded[id] {
			t.Fatalf("expected %s in exclusion list, got %v", id, candidates.lastExclude)
		}
	}
	if candidates.lastLimit != 20 {
		t.Fatalf("expected over-fetch of 2x pool cap, got %d", candidates.lastLimit)
	}
}

func TestGeneratePool_ComplementaryCategoriesFirst(t *testing.T) {
	// visual_arts complementa con performing, media y literary.
	candidates := &mockCandidateRepo{
		queryData: []domain.CandidateProfile{
			{ID: "same", Category: domain.CategoryVisualArts},
			{ID: "comp1", Category: domain.CategoryPerformingArts},
			{ID: "other", Category: domain.CategoryCulinaryArts},
			{ID: "comp2", Category: domain.CategoryMediaArts},
		},
	}
	svc := NewCandidatePoolService(candidates, &mockMatchRepo{}, zap.NewNop())

	pool := svc.GeneratePool(context.Background(), testSelf(), nil, nil, 10)
	if len(pool) != 4 {
		t.Fatalf("expected full pool, got %d", len(pool))
	}
	if pool[0].ID != "comp1" || pool[1].ID != "comp2" {
		t.Fatalf("expected complementary categories first, got %s, %s", pool[0].ID, pool[1].ID)
	}
}

func TestGeneratePool_TruncatesToCap(t *testing.T) {
	candidates := &mockCandidateRepo{
		queryData: []domain.CandidateProfile{
			{ID: "c1", Category: domain.CategoryDesign},
			{ID: "c2", Category: domain.CategoryDesign},
			{ID: "c3", Category: domain.CategoryDesign},
		},
	}
	svc := NewCandidatePoolService(candidates, &mockMatchRepo{}, zap.NewNop())

	pool := svc.GeneratePool(context.Background(), testSelf(), nil, nil, 2)
	if len(pool) != 2 {
		t.Fatalf("expected pool capped at 2, got %d", len(pool))
	}
}

func TestGeneratePool_FailSoftOnStoreErrors(t *testing.T) {
	t.Run("partner lookup fails", func(t *testing.T) {
		matches := &mockMatchRepo{partnersErr: errors.New("db down")}
		svc := NewCandidatePoolService(&mockCandidateRepo{}, matches, zap.NewNop())

		pool := svc.GeneratePool(context.Background(), testSelf(), nil, nil, 10)
		if pool == nil || len(pool) != 0 {
			t.Fatalf("expected empty pool on partner lookup failure, got %v", pool)
		}
	})

	t.Run("candidate query fails", func(t *testing.T) {
		candidates := &mockCandidateRepo{queryErr: errors.New("db down")}
		svc := NewCandidatePoolService(candidates, &mockMatchRepo{}, zap.NewNop())

		pool := svc.GeneratePool(context.Background(), testSelf(), nil, nil, 10)
		if pool == nil || len(pool) != 0 {
			t.Fatalf("expected empty pool on candidate query failure, got %v", pool)
		}
	})
}

func TestGeneratePool_ZeroCapReturnsEmpty(t *testing.T) {
	svc := NewCandidatePoolService(&mockCandidateRepo{}, &mockMatchRepo{}, zap.NewNop())
	if pool := svc.GeneratePool(context.Background(), testSelf(), nil, nil, 0); len(pool) != 0 {
		t.Fatalf("expected empty pool for cap 0, got %d", len(pool))
	}
}

func TestGeneratePool_PassesVectorThrough(t *testing.T) {
	candidates := &mockCandidateRepo{}
	svc := NewCandidatePoolService(candidates, &mockMatchRepo{}, zap.NewNop())

	vec := pgvector.NewVector(domain.DefaultTraitProfile("self").TraitVector())
	svc.GeneratePool(context.Background(), testSelf(), &vec, nil, 5)
	if candidates.lastNearTo != &vec {
		t.Fatalf("expected trait vector to reach the candidate query")
	}
}
