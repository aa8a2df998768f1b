package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"lehrmatch/internal/domain"
)

type StudentRepository interface {
	Create(ctx context.Context, profile domain.StudentProfile) error
	GetByID(ctx context.Context, id string) (domain.StudentProfile, error)
	SaveTraitVector(ctx context.Context, studentID string, traits domain.TraitVector) error
}

type PgStudentRepository struct {
	pool *pgxpool.Pool
}

func NewPgStudentRepository(pool *pgxpool.Pool) *PgStudentRepository {
	return &PgStudentRepository{pool: pool}
}

func (r *PgStudentRepository) Create(ctx context.Context, profile domain.StudentProfile) error {
	const query = `
		INSERT INTO student_profiles (id, email, display_name, canton, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.Email,
		profile.DisplayName,
		profile.Canton,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgStudentRepository) GetByID(ctx context.Context, id string) (domain.StudentProfile, error) {
	const query = `
		SELECT id, email, display_name, canton,
		       riasec_realistic, riasec_investigative, riasec_artistic,
		       riasec_social, riasec_enterprising, riasec_conventional,
		       wv_teamwork, wv_independence, wv_creativity, wv_stability,
		       wv_variety, wv_helping_others, wv_physical_activity, wv_technology,
		       traits_version, traits_computed_at, quiz_completed_at,
		       created_at, updated_at
		FROM student_profiles
		WHERE id = $1
	`
	var (
		p          domain.StudentProfile
		computedAt sql.NullTime
		quizDoneAt sql.NullTime
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.Canton,
		&p.Traits.Holland.Realistic,
		&p.Traits.Holland.Investigative,
		&p.Traits.Holland.Artistic,
		&p.Traits.Holland.Social,
		&p.Traits.Holland.Enterprising,
		&p.Traits.Holland.Conventional,
		&p.Traits.WorkValues.Teamwork,
		&p.Traits.WorkValues.Independence,
		&p.Traits.WorkValues.Creativity,
		&p.Traits.WorkValues.Stability,
		&p.Traits.WorkValues.Variety,
		&p.Traits.WorkValues.HelpingOthers,
		&p.Traits.WorkValues.PhysicalActivity,
		&p.Traits.WorkValues.Technology,
		&p.Traits.Version,
		&computedAt,
		&quizDoneAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.StudentProfile{}, err
	}
	if computedAt.Valid {
		p.Traits.ComputedAt = computedAt.Time
	}
	if quizDoneAt.Valid {
		t := quizDoneAt.Time
		p.QuizCompletedAt = &t
	}
	return p, nil
}

// SaveTraitVector overwrites the full trait vector. The 14 scores are also
// written to the trait_vec pgvector column so similarity queries stay possible
// on the SQL side.
func (r *PgStudentRepository) SaveTraitVector(ctx context.Context, studentID string, traits domain.TraitVector) error {
	const query = `
		UPDATE student_profiles SET
			riasec_realistic = $2, riasec_investigative = $3, riasec_artistic = $4,
			riasec_social = $5, riasec_enterprising = $6, riasec_conventional = $7,
			wv_teamwork = $8, wv_independence = $9, wv_creativity = $10, wv_stability = $11,
			wv_variety = $12, wv_helping_others = $13, wv_physical_activity = $14, wv_technology = $15,
			trait_vec = $16,
			traits_version = $17, traits_computed_at = $18,
			quiz_completed_at = $18, updated_at = $18
		WHERE id = $1
	`
	vec := traits.AsVector()
	floats := make([]float32, len(vec))
	for i, v := range vec {
		floats[i] = float32(v)
	}

	tag, err := r.pool.Exec(ctx, query,
		studentID,
		traits.Holland.Realistic,
		traits.Holland.Investigative,
		traits.Holland.Artistic,
		traits.Holland.Social,
		traits.Holland.Enterprising,
		traits.Holland.Conventional,
		traits.WorkValues.Teamwork,
		traits.WorkValues.Independence,
		traits.WorkValues.Creativity,
		traits.WorkValues.Stability,
		traits.WorkValues.Variety,
		traits.WorkValues.HelpingOthers,
		traits.WorkValues.PhysicalActivity,
		traits.WorkValues.Technology,
		pgvector.NewVector(floats),
		traits.Version,
		traits.ComputedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
