package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/quiz"
)

func newQuizService(students *mockStudentRepo) *QuizService {
	return NewQuizService(quiz.NewCatalog(), students, zap.NewNop())
}

func morningAnswer(tileID string) domain.QuizAnswer {
	return domain.QuizAnswer{
		QuestionID: tileID,
		Phase:      domain.PhaseMorning,
		AnsweredAt: time.Now().UTC(),
	}
}

func TestScoreQuiz_PersistsVectorAndCompletesQuiz(t *testing.T) {
	students := newMockStudentRepo(domain.StudentProfile{ID: "s1", Email: "s1@example.ch"})
	svc := newQuizService(students)

	traits, err := svc.ScoreQuiz(context.Background(), "s1", []domain.QuizAnswer{
		morningAnswer("m01"),
		morningAnswer("m07"),
	})
	if err != nil {
		t.Fatalf("score quiz: %v", err)
	}
	if traits.Version != 1 {
		t.Fatalf("expected version 1 on first run, got %d", traits.Version)
	}
	if traits.Holland.Realistic != 1.0 || traits.Holland.Social != 1.0 {
		t.Fatalf("unexpected holland scores: %+v", traits.Holland)
	}

	stored, err := students.GetByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if !stored.HasCompletedQuiz() {
		t.Fatalf("expected quiz marked complete")
	}
	if stored.Traits.Holland != traits.Holland {
		t.Fatalf("stored holland %+v differs from returned %+v", stored.Traits.Holland, traits.Holland)
	}
}

func TestScoreQuiz_VersionIncreasesAcrossRetakes(t *testing.T) {
	students := newMockStudentRepo(domain.StudentProfile{ID: "s1", Email: "s1@example.ch"})
	svc := newQuizService(students)

	first, err := svc.ScoreQuiz(context.Background(), "s1", []domain.QuizAnswer{morningAnswer("m01")})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.ScoreQuiz(context.Background(), "s1", []domain.QuizAnswer{morningAnswer("m05")})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Version != first.Version+1 {
		t.Fatalf("expected version %d, got %d", first.Version+1, second.Version)
	}
	if second.Holland.Realistic != 0 || second.Holland.Artistic != 1.0 {
		t.Fatalf("retake must fully replace the vector, got %+v", second.Holland)
	}
}

func TestScoreQuiz_UnknownStudent(t *testing.T) {
	svc := newQuizService(newMockStudentRepo())

	if _, err := svc.ScoreQuiz(context.Background(), "ghost", nil); err != ErrStudentNotFound {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestScoreQuiz_UnknownQuestionIDsAreSkipped(t *testing.T) {
	students := newMockStudentRepo(domain.StudentProfile{ID: "s1", Email: "s1@example.ch"})
	svc := newQuizService(students)

	traits, err := svc.ScoreQuiz(context.Background(), "s1", []domain.QuizAnswer{
		morningAnswer("m01"),
		morningAnswer("does-not-exist"),
	})
	if err != nil {
		t.Fatalf("score quiz: %v", err)
	}
	if traits.Holland.Realistic != 1.0 {
		t.Fatalf("known answers must still score, got %+v", traits.Holland)
	}
}

func TestScoreQuiz_EmptyAnswersStillCompletes(t *testing.T) {
	students := newMockStudentRepo(domain.StudentProfile{ID: "s1", Email: "s1@example.ch"})
	svc := newQuizService(students)

	traits, err := svc.ScoreQuiz(context.Background(), "s1", nil)
	if err != nil {
		t.Fatalf("score quiz: %v", err)
	}
	for _, v := range traits.AsVector() {
		if v != 0 {
			t.Fatalf("expected zero vector for empty input, got %v", traits.AsVector())
		}
	}
}
