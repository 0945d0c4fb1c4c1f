package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	taskH *TaskHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", healthH.Check)

	auth := r.Group("/auth")
	auth.POST("/signup", userH.Signup)
	auth.POST("/signin", userH.Signin)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", RequireAuth(jwtSvc), userH.Logout)
	auth.GET("/me", RequireAuth(jwtSvc), userH.Me)

	tasks := r.Group("/api/tasks", RequireAuth(jwtSvc))
	tasks.GET("", taskH.List)
	tasks.POST("", taskH.Create)
	tasks.GET("/:id", taskH.Get)
	tasks.PUT("/:id", taskH.Update)
	tasks.DELETE("/:id", taskH.Delete)
	tasks.PATCH("/:id/complete", taskH.ToggleComplete)

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
