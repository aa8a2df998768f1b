package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lehrmatch/internal/domain"
)

type SwipeRepository interface {
	Upsert(ctx context.Context, swipe domain.Swipe) error
	GetByPair(ctx context.Context, studentID, listingID string) (domain.Swipe, error)
	ListListingIDs(ctx context.Context, studentID string) ([]string, error)
}

type PgSwipeRepository struct {
	pool *pgxpool.Pool
}

func NewPgSwipeRepository(pool *pgxpool.Pool) *PgSwipeRepository {
	return &PgSwipeRepository{pool: pool}
}

// Upsert writes the swipe, overwriting an earlier decision for the same pair.
// The (student_id, listing_id) unique constraint makes a repeat swipe an
// update, never a duplicate row.
func (r *PgSwipeRepository) Upsert(ctx context.Context, swipe domain.Swipe) error {
	const query = `
		INSERT INTO swipes (id, student_id, listing_id, direction, swiped_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, listing_id)
		DO UPDATE SET
			direction = EXCLUDED.direction,
			swiped_at = EXCLUDED.swiped_at
	`
	_, err := r.pool.Exec(ctx, query,
		swipe.ID,
		swipe.StudentID,
		swipe.ListingID,
		swipe.Direction,
		swipe.SwipedAt,
	)
	return err
}

func (r *PgSwipeRepository) GetByPair(ctx context.Context, studentID, listingID string) (domain.Swipe, error) {
	const query = `
		SELECT id, student_id, listing_id, direction, swiped_at
		FROM swipes
		WHERE student_id = $1 AND listing_id = $2
	`
	var s domain.Swipe
	err := r.pool.QueryRow(ctx, query, studentID, listingID).Scan(
		&s.ID,
		&s.StudentID,
		&s.ListingID,
		&s.Direction,
		&s.SwipedAt,
	)
	return s, err
}

// ListListingIDs returns every listing the student has swiped, in either
// direction, for feed exclusion.
func (r *PgSwipeRepository) ListListingIDs(ctx context.Context, studentID string) ([]string, error) {
	const query = `
		SELECT listing_id
		FROM swipes
		WHERE student_id = $1
	`
	rows, err := r.pool.Query(ctx, query, studentID)
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
	return ids, rows.Err()
}
