package http_init

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	http_access_middleware "github.com/humanbelnik/filmorate/internal/delivery/http/middleware/access"
	http_metrics_middleware "github.com/humanbelnik/filmorate/internal/delivery/http/middleware/metrics"
	http_requestid_middleware "github.com/humanbelnik/filmorate/internal/delivery/http/middleware/requestid"
	"github.com/humanbelnik/filmorate/internal/validation"
)

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine

	logger *slog.Logger
}

type PoolOption func(*ControllerPool)

func WithLogger(logger *slog.Logger) PoolOption {
	return func(p *ControllerPool) {
		p.logger = logger
	}
}

// NewControllerPool builds the engine with the common middleware chain.
// mode is config.ModeReadWrite or config.ModeReadOnly.
func NewControllerPool(mode string, opts ...PoolOption) *ControllerPool {
	pool := &ControllerPool{
		pool:   make([]Controller, 0, 10),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(pool)
	}

	if err := registerValidators(); err != nil {
		pool.logger.Error("failed to extend binding validator", slog.String("error", err.Error()))
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		http_requestid_middleware.RequestID(),
		http_metrics_middleware.Instrument(),
		logRequests(pool.logger),
		http_access_middleware.ReadOnlyBadGatewayMiddleware(mode),
	)

	pool.engine = engine
	pool.rg = &engine.RouterGroup
	return pool
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// RunAll serves until ctx is cancelled, then drains in-flight requests
// for at most shutdownTimeout.
func (pool *ControllerPool) RunAll(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           pool.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("http server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("run http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	pool.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("binding engine is not validator/v10")
	}
	return validation.Register(v)
}

func logRequests(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(http_common.RequestIDKey)),
		)
	}
}
