package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lehrmatch/internal/domain"
	"lehrmatch/internal/service"
)

// FeedHandler serves the swipe feed, swipe recording and match listing.
type FeedHandler struct {
	logger    *zap.Logger
	feedServ  *service.FeedService
	swipeServ *service.SwipeService
}

func NewFeedHandler(logger *zap.Logger, feedServ *service.FeedService, swipeServ *service.SwipeService) *FeedHandler {
	return &FeedHandler{
		logger:    logger,
		feedServ:  feedServ,
		swipeServ: swipeServ,
	}
}

// GetFeed handles GET /feed.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	feed, err := h.feedServ.Generate(c.Request.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		h.logger.Error("feed generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"feed": feed, "count": len(feed)})
}

// PostSwipe handles POST /swipes.
func (h *FeedHandler) PostSwipe(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		ListingID string `json:"listing_id" binding:"required"`
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid swipe request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.swipeServ.RecordSwipe(c.Request.Context(), claims.SubjectID, req.ListingID, domain.SwipeDirection(req.Direction))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDirection):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction"})
		case errors.Is(err, service.ErrStudentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		case errors.Is(err, service.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		default:
			h.logger.Error("swipe failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record swipe"})
		}
		return
	}

	status := http.StatusOK
	if result.MatchIsNew {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"swipe":        result.Swipe,
		"match":        result.Match,
		"match_is_new": result.MatchIsNew,
	})
}

// ListMatches handles GET /matches.
func (h *FeedHandler) ListMatches(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	matches, err := h.swipeServ.ListMatches(c.Request.Context(), claims.SubjectID)
	if err != nil {
		h.logger.Error("list matches failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches, "count": len(matches)})
}
