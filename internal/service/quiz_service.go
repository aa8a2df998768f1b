package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/quiz"
	"lehrmatch/internal/repository"
)

// QuizService runs the scoring engine over submitted answers and persists the
// resulting trait vector on the student profile.
type QuizService struct {
	engine   *quiz.Engine
	catalog  *quiz.Catalog
	students repository.StudentRepository
	logger   *zap.Logger
}

var ErrStudentNotFound = errors.New("student not found")

func NewQuizService(catalog *quiz.Catalog, students repository.StudentRepository, logger *zap.Logger) *QuizService {
	return &QuizService{
		engine:   quiz.NewEngine(catalog),
		catalog:  catalog,
		students: students,
		logger:   logger,
	}
}

// Catalog exposes the static quiz content for clients.
func (s *QuizService) Catalog() *quiz.Catalog {
	return s.catalog
}

// ScoreQuiz recomputes the student's trait vector from a full answer batch.
// Partial input is tolerated; unknown question ids are skipped and logged as
// data-integrity warnings since stale client caches must not crash scoring.
// The version increases monotonically across retakes.
func (s *QuizService) ScoreQuiz(ctx context.Context, studentID string, answers []domain.QuizAnswer) (domain.TraitVector, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TraitVector{}, ErrStudentNotFound
		}
		return domain.TraitVector{}, fmt.Errorf("load student %s: %w", studentID, err)
	}

	result := s.engine.Score(answers)
	for _, id := range result.UnknownIDs {
		s.logger.Warn("quiz answer references unknown question",
			zap.String("student_id", studentID),
			zap.String("question_id", id),
		)
	}

	traits := result.TraitVector(student.Traits.Version+1, time.Now().UTC())

	if err := s.students.SaveTraitVector(ctx, studentID, traits); err != nil {
		return domain.TraitVector{}, fmt.Errorf("save trait vector: %w", err)
	}

	s.logger.Info("trait vector recomputed",
		zap.String("student_id", studentID),
		zap.Int("version", traits.Version),
		zap.Int("answers", len(answers)),
		zap.Strings("top_codes", traits.Holland.TopThreeCodes()),
	)
	return traits, nil
}
