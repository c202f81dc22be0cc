package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"creator-match/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas del motor.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	personalityH *PersonalityHandler,
	matchH *MatchHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/", JWTAuthMiddleware(jwtSvc))

	auth.POST("/quiz/submit", personalityH.SubmitQuiz)
	auth.GET("/personality", personalityH.GetPersonality)
	auth.GET("/personality/insights", personalityH.GetInsights)

	matches := auth.Group("/matches")
	matches.POST("/generate", matchH.Generate)
	matches.GET("", matchH.List)
	matches.POST("/:id/view", matchH.View)
	matches.POST("/:id/respond", matchH.Respond)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
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

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
