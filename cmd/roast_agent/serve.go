package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roast_agent/internal/infrastructure/restapi"
	"roast_agent/internal/pkg/metrics"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roast HTTP API and web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides config and $PORT)")
	return cmd
}

func runServe(ctx context.Context, configPath, port string) error {
	app, err := newApplication(configPath, "")
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.cfg
	if port != "" {
		cfg.Server.Port = port
	}

	gin.SetMode(gin.ReleaseMode)
	opts := restapi.RouterOptions{AllowOrigins: cfg.Cors.AllowOrigins}
	if cfg.Metrics.Enabled {
		metrics.MustRegisterMetrics(prometheus.DefaultRegisterer)
		opts.MetricsHandler = promhttp.Handler()
		opts.MetricsPath = cfg.Metrics.Path
		app.zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", cfg.Metrics.Path))
	}

	if cfg.Swagger.Enabled {
		opts.SwaggerPath = cfg.Swagger.Path
		app.zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path+"/index.html"))
	}

	handler := restapi.NewRoastHandler(app.roastService, cfg.OpenRouter.AppURL, app.zapLogger)
	router := restapi.SetupRouter(handler, app.zapLogger, opts)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		app.zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			app.zapLogger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.zapLogger.Info("Shutting down server...")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		app.zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	app.zapLogger.Info("Server exiting")
	return nil
}
