package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StartHTTPServer serves the API until SIGINT/SIGTERM, then drains
// in-flight requests. The shutdown itself is audited so operators can
// tell a deploy from a crash in the log stream.
func StartHTTPServer(router *gin.Engine, cfg ServerConfig, audit AuditLogger) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("api listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("listen failed", zap.Error(err))
		}
		return
	case sig := <-quit:
		audit.Log(context.Background(), AuditLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "draining in-flight requests",
			Meta:    map[string]any{"signal": sig.String()},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("shutdown deadline exceeded, closing", zap.Error(err))
		_ = server.Close()
		return
	}
	zap.L().Info("api stopped")
}
