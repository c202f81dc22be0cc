package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"creator-match/internal/domain"
)

type TraitProfileRepository interface {
	Upsert(ctx context.Context, profile domain.TraitProfile) error
	GetByProfileID(ctx context.Context, profileID string) (domain.TraitProfile, error)
}

type PgTraitProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgTraitProfileRepository(pool *pgxpool.Pool) *PgTraitProfileRepository {
	return &PgTraitProfileRepository{pool: pool}
}

// Upsert guarda el perfil de rasgos junto con su vector de compatibilidad
// (las siete dimensiones en orden fijo) para el prefiltro por distancia.
func (r *PgTraitProfileRepository) Upsert(ctx context.Context, profile domain.TraitProfile) error {
	const query = `
		INSERT INTO trait_profiles (
			id, profile_id,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			creativity_index, risk_tolerance,
			collaboration_style, communication_preference, work_pace, feedback_style,
			confidence, trait_vector, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (profile_id)
		DO UPDATE SET
			openness = EXCLUDED.openness,
			conscientiousness = EXCLUDED.conscientiousness,
			extraversion = EXCLUDED.extraversion,
			agreeableness = EXCLUDED.agreeableness,
			neuroticism = EXCLUDED.neuroticism,
			creativity_index = EXCLUDED.creativity_index,
			risk_tolerance = EXCLUDED.risk_tolerance,
			collaboration_style = EXCLUDED.collaboration_style,
			communication_preference = EXCLUDED.communication_preference,
			work_pace = EXCLUDED.work_pace,
			feedback_style = EXCLUDED.feedback_style,
			confidence = EXCLUDED.confidence,
			trait_vector = EXCLUDED.trait_vector,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.ProfileID,
		profile.Openness,
		profile.Conscientiousness,
		profile.Extraversion,
		profile.Agreeableness,
		profile.Neuroticism,
		profile.CreativityIndex,
		profile.RiskTolerance,
		profile.CollaborationStyle,
		profile.CommunicationPreference,
		profile.WorkPace,
		profile.FeedbackStyle,
		profile.Confidence,
		pgvector.NewVector(profile.TraitVector()),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgTraitProfileRepository) GetByProfileID(ctx context.Context, profileID string) (domain.TraitProfile, error) {
	const query = `
		SELECT id, profile_id,
			openness, conscientiousness, extraversion, agreeableness, neuroticism,
			creativity_index, risk_tolerance,
			collaboration_style, communication_preference, work_pace, feedback_style,
			confidence, created_at, updated_at
		FROM trait_profiles
		WHERE profile_id = $1
	`

	var t domain.TraitProfile
	err := r.pool.QueryRow(ctx, query, profileID).Scan(
		&t.ID,
		&t.ProfileID,
		&t.Openness,
		&t.Conscientiousness,
		&t.Extraversion,
		&t.Agreeableness,
		&t.Neuroticism,
		&t.CreativityIndex,
		&t.RiskTolerance,
		&t.CollaborationStyle,
		&t.CommunicationPreference,
		&t.WorkPace,
		&t.FeedbackStyle,
		&t.Confidence,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TraitProfile{}, domain.ErrNotFound
	}
	return t, err
}
