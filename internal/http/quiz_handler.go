package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/repository"
	"lehrmatch/internal/service"
)

// QuizHandler serves the assessment content and scoring endpoints.
type QuizHandler struct {
	logger   *zap.Logger
	quizServ *service.QuizService
	students repository.StudentRepository
}

func NewQuizHandler(logger *zap.Logger, quizServ *service.QuizService, students repository.StudentRepository) *QuizHandler {
	return &QuizHandler{
		logger:   logger,
		quizServ: quizServ,
		students: students,
	}
}

// GetContent handles GET /quiz/content.
func (h *QuizHandler) GetContent(c *gin.Context) {
	catalog := h.quizServ.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"morning_tiles":      catalog.MorningTiles,
		"afternoon_tiles":    catalog.AfternoonTiles,
		"scenario_questions": catalog.ScenarioQuestions,
	})
}

type submitAnswer struct {
	QuestionID  string `json:"question_id" binding:"required"`
	Phase       string `json:"phase" binding:"required"`
	OptionIndex int    `json:"option_index"`
}

// SubmitQuiz handles POST /quiz/submit.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Answers []submitAnswer `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid quiz submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	answers := make([]domain.QuizAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domain.QuizAnswer{
			QuestionID:  a.QuestionID,
			Phase:       domain.QuizPhase(a.Phase),
			OptionIndex: a.OptionIndex,
			AnsweredAt:  now,
		})
	}

	traits, err := h.quizServ.ScoreQuiz(c.Request.Context(), claims.SubjectID, answers)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		h.logger.Error("quiz scoring failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not score quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"traits":    traits,
		"top_codes": traits.Holland.TopThreeCodes(),
	})
}

// GetPersonality handles GET /profile/personality.
func (h *QuizHandler) GetPersonality(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	student, err := h.students.GetByID(c.Request.Context(), claims.SubjectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	if !student.HasCompletedQuiz() {
		c.JSON(http.StatusOK, gin.H{"quiz_completed": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz_completed": true,
		"traits":         student.Traits,
		"top_codes":      student.Traits.Holland.TopThreeCodes(),
		"dominant_type":  student.Traits.Holland.DominantType(),
	})
}
