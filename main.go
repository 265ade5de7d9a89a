package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/config"
	"blog-api/handlers"
	"blog-api/helper"
	"blog-api/metrics"
	"blog-api/repositories"
	"blog-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	port     string
	seed     bool
	logLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:           "blog-api",
		Short:         "Serve the in-memory blog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Port = opts.port
			}
			if flags.Changed("seed") {
				cfg.SeedSampleData = opts.seed
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.port, "port", "8080", "HTTP listen port (overrides PORT)")
	cmd.Flags().BoolVar(&opts.seed, "seed", true, "create sample users and tags at startup (overrides SEED_SAMPLE_DATA)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level (overrides LOG_LEVEL)")

	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := config.InitLogger(cfg)
	if !cfg.EnvFileLoaded {
		logger.Debug("no .env file found")
	}
	gin.SetMode(cfg.GinMode)

	// Initialize store and repositories
	store := repositories.NewStore()
	defer store.Close()

	userRepo := repositories.NewUserRepository(store)
	postRepo := repositories.NewPostRepository(store)
	commentRepo := repositories.NewCommentRepository(store)
	tagRepo := repositories.NewTagRepository(store)
	queryRepo := repositories.NewQueryRepository(store)

	// Initialize services
	svc := handlers.Services{
		Users:      services.NewUserService(userRepo, logger.WithField("service", "users")),
		Posts:      services.NewPostService(postRepo, queryRepo, logger.WithField("service", "posts")),
		Comments:   services.NewCommentService(commentRepo, queryRepo, logger.WithField("service", "comments")),
		Tags:       services.NewTagService(tagRepo, logger.WithField("service", "tags")),
		Statistics: services.NewStatisticsService(queryRepo),
	}
	if err := metrics.RegisterEntityGauges(queryRepo.Statistics); err != nil {
		return fmt.Errorf("register entity gauges: %w", err)
	}

	if cfg.SeedSampleData {
		if err := services.SeedSampleData(svc.Users, svc.Tags, logger); err != nil {
			return err
		}
	}

	if cfg.ReportingEnabled() {
		reports, err := startReporting(ctx, cfg, store, logger)
		if err != nil {
			return err
		}
		defer reports()
	}

	h, err := helper.NewHTTPHelper()
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}
	router := handlers.NewRouter(svc, handlers.RouterConfig{
		Helper:      h,
		Logger:      logger,
		CorsOrigins: cfg.CorsAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// startReporting connects the reporting database and runs the periodic
// exporter. The returned func stops it and waits for the last export.
func startReporting(ctx context.Context, cfg config.Config, store *repositories.Store, logger *logrus.Logger) (func(), error) {
	log := logger.WithField("component", "reports")
	db, err := config.InitDB(cfg.ReportDatabaseURL, log)
	if err != nil {
		return nil, err
	}
	reportRepo := repositories.NewReportRepository(db)
	if err := reportRepo.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate reporting tables: %w", err)
	}

	reportService := services.NewReportService(store, reportRepo, log)
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reportService.Run(runCtx, cfg.ReportInterval)
	}()
	log.WithField("interval", cfg.ReportInterval).Info("report exporter started")

	return func() {
		cancel()
		<-done
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
