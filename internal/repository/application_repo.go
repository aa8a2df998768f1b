package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lehrmatch/internal/domain"
)

type ApplicationRepository interface {
	// Create inserts an application for a match. When one already exists for
	// the match the existing record is returned and isNew is false.
	Create(ctx context.Context, app domain.Application) (created domain.Application, isNew bool, err error)
	GetByID(ctx context.Context, id string) (domain.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error)
	// ApplyTransition runs decide against the latest row state under a row
	// lock and, if decide returns an entry, appends it and updates the
	// current status in the same transaction. A decide error rolls back and
	// is returned unchanged.
	ApplyTransition(ctx context.Context, id string, decide func(domain.Application) (domain.TimelineEntry, error)) (domain.Application, error)
}

type PgApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewPgApplicationRepository(pool *pgxpool.Pool) *PgApplicationRepository {
	return &PgApplicationRepository{pool: pool}
}

const applicationColumns = `id, match_id, student_id, listing_id, status, timeline, created_at, updated_at`

func (r *PgApplicationRepository) Create(ctx context.Context, app domain.Application) (domain.Application, bool, error) {
	const query = `
		INSERT INTO applications (id, match_id, student_id, listing_id, status, timeline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (match_id) DO NOTHING
		RETURNING ` + applicationColumns + `
	`
	timeline, err := json.Marshal(app.Timeline)
	if err != nil {
		return domain.Application{}, false, err
	}

	inserted, err := scanApplication(r.pool.QueryRow(ctx, query,
		app.ID,
		app.MatchID,
		app.StudentID,
		app.ListingID,
		app.Status,
		timeline,
		app.CreatedAt,
		app.UpdatedAt,
	))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Application{}, false, err
	}

	existing, err := r.getByMatchID(ctx, app.MatchID)
	if err != nil {
		return domain.Application{}, false, err
	}
	return existing, false, nil
}

func (r *PgApplicationRepository) GetByID(ctx context.Context, id string) (domain.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1
	`
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *PgApplicationRepository) getByMatchID(ctx context.Context, matchID string) (domain.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE match_id = $1
	`
	return scanApplication(r.pool.QueryRow(ctx, query, matchID))
}

func (r *PgApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	const query = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE student_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ApplyTransition serializes concurrent transitions through a SELECT ... FOR
// UPDATE so decide always sees the latest state, not a request-time snapshot.
func (r *PgApplicationRepository) ApplyTransition(ctx context.Context, id string, decide func(domain.Application) (domain.TimelineEntry, error)) (domain.Application, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Application{}, err
	}
	defer tx.Rollback(ctx)

	const selectQuery = `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1
		FOR UPDATE
	`
	current, err := scanApplication(tx.QueryRow(ctx, selectQuery, id))
	if err != nil {
		return domain.Application{}, err
	}

	entry, err := decide(current)
	if err != nil {
		return domain.Application{}, err
	}

	updated := current
	updated.Timeline = append(append([]domain.TimelineEntry{}, current.Timeline...), entry)
	updated.Status = entry.Status
	updated.UpdatedAt = entry.Timestamp

	timeline, err := json.Marshal(updated.Timeline)
	if err != nil {
		return domain.Application{}, err
	}

	const updateQuery = `
		UPDATE applications
		SET status = $2, timeline = $3, updated_at = $4
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, updateQuery, id, updated.Status, timeline, updated.UpdatedAt); err != nil {
		return domain.Application{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Application{}, err
	}
	return updated, nil
}

func scanApplication(row rowScanner) (domain.Application, error) {
	var (
		a        domain.Application
		timeline []byte
	)
	err := row.Scan(
		&a.ID,
		&a.MatchID,
		&a.StudentID,
		&a.ListingID,
		&a.Status,
		&timeline,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &a.Timeline); err != nil {
			return domain.Application{}, err
		}
	}
	return a, nil
}
