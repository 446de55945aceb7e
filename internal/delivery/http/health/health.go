package http_health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type StatusDTO struct {
	Status string `json:"status" example:"ok"`
}

type Controller struct {
	db     Pinger
	logger *slog.Logger
}

// New builds the health controller. db may be nil for the in-memory backend.
func New(db Pinger) *Controller {
	return &Controller{
		db:     db,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.health)
}

// @Summary Health check
// @Tags Service
// @Produce json
// @Success 200 {object} StatusDTO
// @Failure 503 {object} StatusDTO
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), pingTimeout)
		defer cancel()

		if err := c.db.PingContext(pingCtx); err != nil {
			c.logger.Error("database ping failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusServiceUnavailable, StatusDTO{Status: "unavailable"})
			return
		}
	}

	ctx.JSON(http.StatusOK, StatusDTO{Status: "ok"})
}
