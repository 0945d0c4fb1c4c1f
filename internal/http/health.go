package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskflow/internal/db"
)

// HealthHandler expone GET /health con el estado de las dependencias.
type HealthHandler struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client
}

func NewHealthHandler(logger *zap.Logger, pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		pool:   pool,
		redis:  redisClient,
	}
}

// Check responde 200 siempre; el detalle por dependencia va en el payload.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "not_configured"
	if h.pool != nil {
		dbStatus = "ok"
		if err := db.Ping(ctx, h.pool); err != nil {
			h.logger.Warn("health db ping failed", zap.Error(err))
			dbStatus = "unreachable"
		}
	}

	redisStatus := "not_configured"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn("health redis ping failed", zap.Error(err))
			redisStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}
