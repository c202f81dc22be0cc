package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"creator-match/internal/domain"
)

// CandidateRepository consulta proyecciones de solo lectura del store de
// perfiles. Este motor no es dueno de esos datos.
type CandidateRepository interface {
	GetByID(ctx context.Context, profileID string) (domain.CandidateProfile, error)
	QueryValidatedActive(ctx context.Context, exclude []string, nearTo *pgvector.Vector, limit int) ([]domain.CandidateProfile, error)
}

type PgCandidateRepository struct {
	pool *pgxpool.Pool
}

func NewPgCandidateRepository(pool *pgxpool.Pool) *PgCandidateRepository {
	return &PgCandidateRepository{pool: pool}
}

func (r *PgCandidateRepository) GetByID(ctx context.Context, profileID string) (domain.CandidateProfile, error) {
	const query = `
		SELECT id, display_name, category, experience_level, is_validated, is_active, portfolio_count, contact_email
		FROM creator_profiles
		WHERE id = $1
	`

	var c domain.CandidateProfile
	err := r.pool.QueryRow(ctx, query, profileID).Scan(
		&c.ID,
		&c.DisplayName,
		&c.Category,
		&c.ExperienceLevel,
		&c.IsValidated,
		&c.IsActive,
		&c.PortfolioCount,
		&c.ContactEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CandidateProfile{}, domain.ErrNotFound
	}
	return c, err
}

// QueryValidatedActive devuelve candidatos validados y activos, excluyendo
// los ids dados. Si nearTo no es nil, ordena por distancia del vector de
// rasgos del solicitante como prefiltro grueso antes del scoring exacto;
// los perfiles sin quiz quedan al final.
func (r *PgCandidateRepository) QueryValidatedActive(ctx context.Context, exclude []string, nearTo *pgvector.Vector, limit int) ([]domain.CandidateProfile, error) {
	const queryNear = `
		SELECT cp.id, cp.display_name, cp.category, cp.experience_level, cp.is_validated, cp.is_active, cp.portfolio_count, cp.contact_email
		FROM creator_profiles cp
		LEFT JOIN trait_profiles tp ON tp.profile_id = cp.id
		WHERE cp.is_validated = TRUE
		  AND cp.is_active = TRUE
		  AND cp.id != ALL($1)
		ORDER BY tp.trait_vector <-> $2 NULLS LAST, cp.id
		LIMIT $3
	`
	const queryPlain = `
		SELECT id, display_name, category, experience_level, is_validated, is_active, portfolio_count, contact_email
		FROM creator_profiles
		WHERE is_validated = TRUE
		  AND is_active = TRUE
		  AND id != ALL($1)
		ORDER BY id
		LIMIT $2
	`

	if exclude == nil {
		exclude = []string{}
	}

	var (
		rows pgx.Rows
		err  error
	)
	if nearTo != nil {
		rows, err = r.pool.Query(ctx, queryNear, exclude, *nearTo, limit)
	} else {
		rows, err = r.pool.Query(ctx, queryPlain, exclude, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.CandidateProfile
	for rows.Next() {
		var c domain.CandidateProfile
		if err := rows.Scan(
			&c.ID,
			&c.DisplayName,
			&c.Category,
			&c.ExperienceLevel,
			&c.IsValidated,
			&c.IsActive,
			&c.PortfolioCount,
			&c.ContactEmail,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}
