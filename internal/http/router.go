package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lehrmatch/internal/service"
)

// NewRouter wires middlewares and routes.
func NewRouter(
	logger *zap.Logger,
	jwtServ *service.JWTService,
	authH *AuthHandler,
	profileH *ProfileHandler,
	quizH *QuizHandler,
	feedH *FeedHandler,
	appH *ApplicationHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/logout", authH.Logout)

	// Quiz content is public; everything else needs a valid access token.
	r.GET("/quiz/content", quizH.GetContent)

	protected := r.Group("/")
	protected.Use(JWTAuthMiddleware(jwtServ))
	protected.POST("/profile", profileH.CreateProfile)
	protected.POST("/quiz/submit", quizH.SubmitQuiz)
	protected.GET("/profile/personality", quizH.GetPersonality)

	protected.GET("/feed", feedH.GetFeed)
	protected.POST("/swipes", feedH.PostSwipe)
	protected.GET("/matches", feedH.ListMatches)

	protected.POST("/applications", appH.CreateApplication)
	protected.GET("/applications", appH.ListApplications)
	protected.GET("/applications/:id", appH.GetApplication)
	protected.POST("/applications/:id/status", appH.TransitionApplication)

	return r
}

// zapLoggerMiddleware logs one line per request.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware forces Content-Type: application/json on responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
