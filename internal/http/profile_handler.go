package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/repository"
)

// ProfileHandler provisions the student profile row on first login. Identity
// (credentials, sessions) lives with the external provider; the profile here
// only carries what matching needs.
type ProfileHandler struct {
	logger   *zap.Logger
	students repository.StudentRepository
}

func NewProfileHandler(logger *zap.Logger, students repository.StudentRepository) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		students: students,
	}
}

// CreateProfile handles POST /profile. The profile id and email come from the
// token, never from the body; calling it again for an existing profile is a
// no-op.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
		Canton      string `json:"canton"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if existing, err := h.students.GetByID(c.Request.Context(), claims.SubjectID); err == nil {
		c.JSON(http.StatusOK, gin.H{"profile": existing})
		return
	}

	now := time.Now().UTC()
	profile := domain.StudentProfile{
		ID:          claims.SubjectID,
		Email:       claims.Email,
		DisplayName: req.DisplayName,
		Canton:      req.Canton,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.students.Create(c.Request.Context(), profile); err != nil {
		h.logger.Error("create profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}
