package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"lehrmatch/internal/domain"
)

type ListingRepository interface {
	GetByID(ctx context.Context, id string) (domain.Listing, error)
	ListActiveExcluding(ctx context.Context, excludedIDs []string, limit int) ([]domain.Listing, error)
}

type PgListingRepository struct {
	pool *pgxpool.Pool
}

func NewPgListingRepository(pool *pgxpool.Pool) *PgListingRepository {
	return &PgListingRepository{pool: pool}
}

const listingColumns = `
	id, company_id, company_name, title, field, canton, city,
	spots_available, active,
	ideal_realistic, ideal_investigative, ideal_artistic,
	ideal_social, ideal_enterprising, ideal_conventional,
	created_at
`

func (r *PgListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	const query = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`
	return scanListing(r.pool.QueryRow(ctx, query, id))
}

// ListActiveExcluding returns active listings with open spots that are not in
// excludedIDs, oldest first so feed ranking starts from a stable base order.
func (r *PgListingRepository) ListActiveExcluding(ctx context.Context, excludedIDs []string, limit int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 200
	}
	const query = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE active AND spots_available > 0 AND NOT (id = ANY($1))
		ORDER BY created_at, id
		LIMIT $2
	`
	if excludedIDs == nil {
		excludedIDs = []string{}
	}
	rows, err := r.pool.Query(ctx, query, excludedIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (domain.Listing, error) {
	var (
		l     domain.Listing
		ideal [6]sql.NullFloat64
	)
	err := row.Scan(
		&l.ID,
		&l.CompanyID,
		&l.CompanyName,
		&l.Title,
		&l.Field,
		&l.Canton,
		&l.City,
		&l.SpotsAvailable,
		&l.Active,
		&ideal[0], &ideal[1], &ideal[2], &ideal[3], &ideal[4], &ideal[5],
		&l.CreatedAt,
	)
	if err != nil {
		return domain.Listing{}, err
	}

	assign := func(n sql.NullFloat64) *float64 {
		if !n.Valid {
			return nil
		}
		v := n.Float64
		return &v
	}
	l.Ideal = domain.IdealVector{
		Realistic:     assign(ideal[0]),
		Investigative: assign(ideal[1]),
		Artistic:      assign(ideal[2]),
		Social:        assign(ideal[3]),
		Enterprising:  assign(ideal[4]),
		Conventional:  assign(ideal[5]),
	}
	return l, nil
}
