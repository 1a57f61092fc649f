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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gangosri/his/internal/config"
	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/domain/billing"
	"github.com/gangosri/his/internal/domain/clinical"
	"github.com/gangosri/his/internal/domain/dashboard"
	"github.com/gangosri/his/internal/domain/diagnostics"
	"github.com/gangosri/his/internal/domain/patient"
	"github.com/gangosri/his/internal/domain/scheduling"
	"github.com/gangosri/his/internal/domain/user"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/db"
	"github.com/gangosri/his/internal/platform/metrics"
	"github.com/gangosri/his/internal/platform/middleware"
	"github.com/gangosri/his/internal/platform/sequence"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "his-server",
		Short: "Hospital Information System API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HIS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the bootstrap administrator account",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the default administrator account if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := user.NewRepo(pool)
			if _, err := repo.GetByEmail(ctx, email); err == nil {
				fmt.Printf("Admin account %s already exists, nothing to do.\n", email)
				return nil
			} else if !errors.Is(err, user.ErrNotFound) {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			phone := "+919876543210"
			admin := &user.User{
				Email:        email,
				FullName:     "System Administrator",
				Role:         auth.RoleAdmin,
				Phone:        &phone,
				Active:       true,
				PasswordHash: hash,
			}
			if err := repo.Create(ctx, admin); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			fmt.Printf("Admin account %s created.\n", email)
			return nil
		},
	}
	createCmd.Flags().String("email", "admin@gangoshrihis.com", "Administrator email")
	createCmd.Flags().String("password", "Admin@123", "Administrator password")
	cmd.AddCommand(createCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	m := metrics.New()

	// Audit trail and sequence issuer are shared across every domain service.
	trail := audit.NewTrail(audit.NewRepo(pool), logger, m.AuditWriteFailures)
	seq := sequence.NewPGIssuer(pool)

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenLifetime())

	userSvc := user.NewService(user.NewRepo(pool), tokens, trail, m.LoginAttemptsTotal)
	patientSvc := patient.NewService(patient.NewRepo(pool), seq, trail)
	schedSvc := scheduling.NewService(scheduling.NewRepo(pool), patientSvc, userSvc, seq, trail)
	clinicalSvc := clinical.NewService(clinical.NewEncounterRepo(pool), clinical.NewPrescriptionRepo(pool),
		patientSvc, schedSvc, seq, trail)
	dxSvc := diagnostics.NewService(diagnostics.NewOrderRepo(pool), diagnostics.NewReportRepo(pool),
		patientSvc, seq, trail)
	billingSvc := billing.NewService(billing.NewRepo(pool), patientSvc, seq, trail)
	dashSvc := dashboard.NewService(dashboard.NewRepo(pool))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(m.Middleware())

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	e.GET("/health", db.HealthHandler(pool))
	e.GET("/metrics", m.Handler())

	userHandler := user.NewHandler(userSvc)

	// Login is the only route reachable without a token.
	public := e.Group("/api")
	public.Use(middleware.RateLimit(rateLimitCfg))
	userHandler.RegisterPublicRoutes(public)

	api := e.Group("/api")
	api.Use(middleware.RateLimit(rateLimitCfg))
	api.Use(auth.Middleware(tokens, auth.PrincipalSourceFunc(userSvc.FindPrincipal)))

	userHandler.RegisterRoutes(api)
	patient.NewHandler(patientSvc).RegisterRoutes(api)
	scheduling.NewHandler(schedSvc).RegisterRoutes(api)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(api)
	diagnostics.NewHandler(dxSvc).RegisterRoutes(api)
	billing.NewHandler(billingSvc).RegisterRoutes(api)
	dashboard.NewHandler(dashSvc).RegisterRoutes(api)
	audit.NewHandler(trail).RegisterRoutes(api)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
