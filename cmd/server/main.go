package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"syscall"

	route "github.com/bassista/go_folio/internal/api/route"
	appctx "github.com/bassista/go_folio/internal/app"
	"github.com/bassista/go_folio/internal/config"
	"github.com/bassista/go_folio/internal/content"
	"github.com/bassista/go_folio/internal/dashboard"
	"github.com/bassista/go_folio/internal/logger"
	"github.com/bassista/go_folio/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/enrichman/httpgrace"
)

func main() {
	if err := godotenv.Load(); err == nil {
		logger.WithComponent("main").Debug("loaded .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithComponent("main").Fatalf("configuration error: %v", err)
	}
	if err := logger.Configure(cfg.Misc.LogLevel, cfg.Misc.LogFormat); err != nil {
		logger.WithComponent("main").Warnf("invalid log level, keeping %s: %v", logger.Logger.GetLevel(), err)
	}
	logger.WithComponent("main").Infof("App will run on port: %d", cfg.Server.Port)

	repo := content.NewRepository(cfg.Content.FilePath)
	resume, err := repo.Load()
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot load content: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init templates: %v", err)
	}

	bars := dashboard.NewActivityBars(cfg.Dashboard.ActivityInterval, cfg.Dashboard.ReducedMotion, nil)
	app, err := appctx.New(cfg, repo, content.NewHolder(resume), appctx.NewWidget(cfg.Locale), bars, renderer)
	if err != nil {
		logger.WithComponent("main").Fatalf("cannot init app: %v", err)
	}
	defer app.Shutdown()

	if err := app.StartWatchers(); err != nil {
		logger.WithComponent("main").Fatalf("cannot start background tasks: %v", err)
	}

	gin.SetMode(cfg.Misc.GinMode)
	gin.DefaultWriter = logger.Logger.Writer()
	gin.DefaultErrorWriter = logger.Logger.Writer()

	r := route.SetupRoutes(app)
	srv := createGraceHttpServer(app.BaseCtx, "main-server", app.Config.Server, r)

	if err := srv.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithComponent("main").Error(err)
	}
}

func createGraceHttpServer(ctx context.Context, name string, serverConfig config.ServerConfig, r *gin.Engine) *httpgrace.Server {
	slogLogger := slog.New(slog.NewTextHandler(logger.Logger.Writer(), nil))

	srv := httpgrace.NewServer(r,
		httpgrace.WithTimeout(serverConfig.ShutDownTimeout),
		httpgrace.WithSignals(syscall.SIGTERM, syscall.SIGINT),
		httpgrace.WithLogger(slogLogger),
		httpgrace.WithBeforeShutdown(func() {
			logger.WithComponent("http").Infof("Shutting down %s server....", name)
		}),
		httpgrace.WithServerOptions(
			httpgrace.WithReadTimeout(serverConfig.ReadTimeout),
			httpgrace.WithWriteTimeout(serverConfig.WriteTimeout),
			httpgrace.WithIdleTimeout(serverConfig.IdleTimeout),
			func(srv *http.Server) {
				srv.BaseContext = func(_ net.Listener) context.Context {
					return ctx
				}
			},
			func(srv *http.Server) {
				srv.ErrorLog = log.New(logger.Logger.Writer(), fmt.Sprintf("[%s] ", name), log.LstdFlags)
			},
		),
	)
	return srv
}
