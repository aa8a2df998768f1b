package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/service"
)

// ApplicationHandler serves application creation, listing and transitions.
type ApplicationHandler struct {
	logger  *zap.Logger
	appServ *service.ApplicationService
}

func NewApplicationHandler(logger *zap.Logger, appServ *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		logger:  logger,
		appServ: appServ,
	}
}

// CreateApplication handles POST /applications.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		MatchID string `json:"match_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid application request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	app, err := h.appServ.CreateFromMatch(c.Request.Context(), claims.SubjectID, req.MatchID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, service.ErrNotApplicationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your match"})
		default:
			h.logger.Error("create application failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// ListApplications handles GET /applications.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	apps, err := h.appServ.ListForStudent(c.Request.Context(), claims.SubjectID)
	if err != nil {
		h.logger.Error("list applications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

// GetApplication handles GET /applications/:id.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	app, err := h.appServ.Get(c.Request.Context(), claims.SubjectID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		case errors.Is(err, service.ErrNotApplicationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your application"})
		default:
			h.logger.Error("get application failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app})
}

// TransitionApplication handles POST /applications/:id/status. Who may move
// which edge is decided in the service against the locked row state.
func (h *ApplicationHandler) TransitionApplication(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid transition request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	actor := service.Actor{ID: claims.SubjectID, Role: claims.Role}
	app, err := h.appServ.Transition(c.Request.Context(), actor, c.Param("id"), domain.ApplicationStatus(req.Status), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		case errors.Is(err, service.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		case errors.Is(err, service.ErrNotApplicationOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your application"})
		case errors.Is(err, service.ErrActorNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed for this role"})
		case errors.Is(err, service.ErrIllegalTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("transition failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not transition application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": app})
}
