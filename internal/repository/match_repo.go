package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lehrmatch/internal/domain"
)

type MatchRepository interface {
	// Create inserts a match for the pair. When a match already exists the
	// existing one is returned and created is false; a concurrent duplicate
	// insert is never an error.
	Create(ctx context.Context, match domain.Match) (created domain.Match, isNew bool, err error)
	GetByID(ctx context.Context, id string) (domain.Match, error)
	GetByPair(ctx context.Context, studentID, listingID string) (domain.Match, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Match, error)
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

const matchColumns = `id, student_id, listing_id, company_id, compatibility_score, matched_at`

func (r *PgMatchRepository) Create(ctx context.Context, match domain.Match) (domain.Match, bool, error) {
	// ON CONFLICT DO NOTHING turns the unique-pair violation from a
	// concurrent insert into the "already matched" outcome.
	const query = `
		INSERT INTO matches (id, student_id, listing_id, company_id, compatibility_score, matched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, listing_id) DO NOTHING
		RETURNING ` + matchColumns + `
	`
	var score any
	if match.CompatibilityScore != nil {
		score = *match.CompatibilityScore
	}

	inserted, err := scanMatch(r.pool.QueryRow(ctx, query,
		match.ID,
		match.StudentID,
		match.ListingID,
		match.CompanyID,
		score,
		match.MatchedAt,
	))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Match{}, false, err
	}

	existing, err := r.GetByPair(ctx, match.StudentID, match.ListingID)
	if err != nil {
		return domain.Match{}, false, err
	}
	return existing, false, nil
}

func (r *PgMatchRepository) GetByID(ctx context.Context, id string) (domain.Match, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE id = $1
	`
	return scanMatch(r.pool.QueryRow(ctx, query, id))
}

func (r *PgMatchRepository) GetByPair(ctx context.Context, studentID, listingID string) (domain.Match, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE student_id = $1 AND listing_id = $2
	`
	return scanMatch(r.pool.QueryRow(ctx, query, studentID, listingID))
}

func (r *PgMatchRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Match, error) {
	const query = `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE student_id = $1
		ORDER BY matched_at DESC
	`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func scanMatch(row rowScanner) (domain.Match, error) {
	var (
		m     domain.Match
		score *int
	)
	err := row.Scan(
		&m.ID,
		&m.StudentID,
		&m.ListingID,
		&m.CompanyID,
		&score,
		&m.MatchedAt,
	)
	if err != nil {
		return domain.Match{}, err
	}
	m.CompatibilityScore = score
	return m, nil
}
