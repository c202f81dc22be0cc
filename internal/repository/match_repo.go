package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"creator-match/internal/domain"
)

const pgUniqueViolation = "23505"

// MatchRepository es el store transaccional de MatchRecords. Las
// transiciones respond se resuelven dentro de una transaccion con lock de
// fila para que dos respond concurrentes no pierdan la mutualidad.
type MatchRepository interface {
	Create(ctx context.Context, record domain.MatchRecord) error
	GetByID(ctx context.Context, id string) (domain.MatchRecord, error)
	ListForProfile(ctx context.Context, profileID string, status domain.MatchStatus, limit, offset int) ([]domain.MatchRecord, error)
	ActivePartnerIDs(ctx context.Context, profileID string, now time.Time) ([]string, error)
	MarkViewed(ctx context.Context, id string, isA bool, now time.Time) (domain.MatchRecord, error)
	Respond(ctx context.Context, id string, isA bool, action domain.MatchAction, now time.Time) (domain.MatchRecord, bool, error)
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

const matchColumns = `
	id, pair_key, profile_a, profile_b,
	compatibility_score, personality_score, skill_score, experience_score,
	explanation, suggested_types,
	status_a, status_b,
	created_at, viewed_at_a, viewed_at_b, matched_at, expires_at
`

// Create inserta el registro con ambos lados pending. Un registro previo ya
// vencido y sin resolver se purga en la misma transaccion; uno vigente hace
// fallar con ErrDuplicatePair. Requiere que la tabla match_records tenga la
// restriccion UNIQUE (pair_key): es esa violacion la que se mapea al error.
func (r *PgMatchRepository) Create(ctx context.Context, record domain.MatchRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create match: %w", err)
	}
	defer tx.Rollback(ctx)

	const purge = `
		DELETE FROM match_records
		WHERE pair_key = $1
		  AND expires_at <= $2
		  AND status_a NOT IN ('matched', 'passed')
		  AND status_b NOT IN ('matched', 'passed')
	`
	if _, err := tx.Exec(ctx, purge, record.PairKey, time.Now().UTC()); err != nil {
		return fmt.Errorf("purge expired match: %w", err)
	}

	const insert = `
		INSERT INTO match_records (
			id, pair_key, profile_a, profile_b,
			compatibility_score, personality_score, skill_score, experience_score,
			explanation, suggested_types,
			status_a, status_b,
			created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.Exec(ctx, insert,
		record.ID,
		record.PairKey,
		record.ProfileA,
		record.ProfileB,
		record.CompatibilityScore,
		record.PersonalityScore,
		record.SkillScore,
		record.ExperienceScore,
		record.Explanation,
		record.SuggestedTypes,
		record.StatusA,
		record.StatusB,
		record.CreatedAt,
		record.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicatePair
		}
		return fmt.Errorf("insert match: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgMatchRepository) GetByID(ctx context.Context, id string) (domain.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM match_records WHERE id = $1`

	record, err := scanMatch(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MatchRecord{}, domain.ErrNotFound
	}
	return record, err
}

// ListForProfile devuelve los matches donde el perfil participa, del mas
// reciente al mas antiguo. El filtro de estado aplica al lado del perfil.
func (r *PgMatchRepository) ListForProfile(ctx context.Context, profileID string, status domain.MatchStatus, limit, offset int) ([]domain.MatchRecord, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM match_records
		WHERE (profile_a = $1 OR profile_b = $1)
	`
	args := []interface{}{profileID}
	if status != "" {
		query += `
		  AND ((profile_a = $1 AND status_a = $2) OR (profile_b = $1 AND status_b = $2))`
		args = append(args, status)
	}
	query += fmt.Sprintf(`
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ActivePartnerIDs devuelve los perfiles que ya estan emparejados con el
// dado en un registro vigente, o que quedaron resueltos (matched/passed).
// Es el conjunto de exclusion del generador de pool.
func (r *PgMatchRepository) ActivePartnerIDs(ctx context.Context, profileID string, now time.Time) ([]string, error) {
	const query = `
		SELECT CASE WHEN profile_a = $1 THEN profile_b ELSE profile_a END
		FROM match_records
		WHERE (profile_a = $1 OR profile_b = $1)
		  AND (expires_at > $2
		       OR status_a IN ('matched', 'passed')
		       OR status_b IN ('matched', 'passed'))
	`

	rows, err := r.pool.Query(ctx, query, profileID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// MarkViewed pasa el lado de pending a viewed. Es idempotente: si el lado
// ya avanzo, devuelve el registro sin tocarlo.
func (r *PgMatchRepository) MarkViewed(ctx context.Context, id string, isA bool, now time.Time) (domain.MatchRecord, error) {
	query := `
		UPDATE match_records
		SET status_a = 'viewed', viewed_at_a = $2
		WHERE id = $1 AND status_a = 'pending'
	`
	if !isA {
		query = `
		UPDATE match_records
		SET status_b = 'viewed', viewed_at_b = $2
		WHERE id = $1 AND status_b = 'pending'
	`
	}

	if _, err := r.pool.Exec(ctx, query, id, now); err != nil {
		return domain.MatchRecord{}, fmt.Errorf("mark viewed: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Respond registra like/pass del lado y evalua la mutualidad en la misma
// transaccion, con lock de fila. Repetir un respond sobre un lado ya
// resuelto es un no-op que devuelve el estado actual.
func (r *PgMatchRepository) Respond(ctx context.Context, id string, isA bool, action domain.MatchAction, now time.Time) (domain.MatchRecord, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.MatchRecord{}, false, fmt.Errorf("begin respond: %w", err)
	}
	defer tx.Rollback(ctx)

	lock := `SELECT ` + matchColumns + ` FROM match_records WHERE id = $1 FOR UPDATE`
	record, err := scanMatch(tx.QueryRow(ctx, lock, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MatchRecord{}, false, domain.ErrNotFound
	}
	if err != nil {
		return domain.MatchRecord{}, false, err
	}

	applied, mutual := record.ApplyRespond(isA, action, now)
	if !applied {
		// Reenvio de un cliente que reintenta: estado actual, sin error.
		return record, mutual, tx.Commit(ctx)
	}

	const update = `
		UPDATE match_records
		SET status_a = $2, status_b = $3, viewed_at_a = $4, viewed_at_b = $5, matched_at = $6
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, update,
		record.ID,
		record.StatusA,
		record.StatusB,
		record.ViewedAtA,
		record.ViewedAtB,
		record.MatchedAt,
	); err != nil {
		return domain.MatchRecord{}, false, fmt.Errorf("update respond: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.MatchRecord{}, false, err
	}
	return record, mutual, nil
}

func scanMatch(row pgx.Row) (domain.MatchRecord, error) {
	var m domain.MatchRecord
	err := row.Scan(
		&m.ID,
		&m.PairKey,
		&m.ProfileA,
		&m.ProfileB,
		&m.CompatibilityScore,
		&m.PersonalityScore,
		&m.SkillScore,
		&m.ExperienceScore,
		&m.Explanation,
		&m.SuggestedTypes,
		&m.StatusA,
		&m.StatusB,
		&m.CreatedAt,
		&m.ViewedAtA,
		&m.ViewedAtB,
		&m.MatchedAt,
		&m.ExpiresAt,
	)
	return m, err
}
