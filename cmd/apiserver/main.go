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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/scheduler"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/jwt"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/password"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/revocation"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/internal/storage"
	"github.com/kumar-97/kukkuta-Kendra/pkg/helper"
	"github.com/kumar-97/kukkuta-Kendra/pkg/logger"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
	"github.com/kumar-97/kukkuta-Kendra/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + cnst.CommandName,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Full(cnst.CommandName))
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context())
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Kukkuta Kendra API server",
		Long:  `Kukkuta Kendra API server connects poultry farmers, feed mills and administrators`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig() (*config.APIServerConfig, *zap.Logger, error) {
	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration from %s: %w", cfgPath, err)
	}
	lg, err := logger.NewLogger(&cfg.Logger, zap.String("service", cnst.CommandName), zap.String("version", version.Get()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	lg.Info("Loaded configuration", zap.String("path", cfgPath))
	return cfg, lg, nil
}

func migrate(ctx context.Context) error {
	cfg, lg, err := loadConfig()
	if err != nil {
		return err
	}
	defer lg.Sync()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	lg.Info("Database schema is up to date", zap.String("type", cfg.Database.Type))
	return nil
}

func run() error {
	cfg, lg, err := loadConfig()
	if err != nil {
		return err
	}
	defer lg.Sync()

	lg.Info("Starting apiserver", zap.String("version", version.Get()))
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pid := helper.NewPIDFile(helper.GetPIDPath(cfg.PID))
	if err := pid.Write(); err != nil {
		lg.Warn("failed to write PID file", zap.String("path", pid.Path()), zap.Error(err))
	} else {
		defer pid.Remove()
	}

	i18n.SetDefaultLanguage(cfg.I18n.DefaultLang)
	if err := i18n.InitTranslator(); err != nil {
		return fmt.Errorf("failed to initialize translator: %w", err)
	}

	shutdownTracing, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			lg.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	hasher := password.Bcrypt{}
	if err := seed(ctx, cfg, db, hasher, lg); err != nil {
		return err
	}

	tokens, err := jwt.NewService(jwt.Config{SecretKey: cfg.JWT.SecretKey, Duration: cfg.JWT.Duration})
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	revoked, err := revocation.NewStore(lg, &cfg.Revocation)
	if err != nil {
		return fmt.Errorf("failed to initialize revocation store: %w", err)
	}
	defer revoked.Close()

	photos, err := storage.NewDiskStorage(lg, cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxSize)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	stats, err := cache.NewFromConfig(lg, &cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize stats cache: %w", err)
	}
	defer stats.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	sched, err := housekeeping(lg, cfg.Scheduler.SweepInterval, revoked, stats)
	if err != nil {
		return err
	}
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := apiserver.NewRouter(&apiserver.Deps{
		Config:  cfg,
		DB:      db,
		Tokens:  tokens,
		Revoked: revoked,
		Hasher:  hasher,
		Photos:  photos,
		Stats:   stats,
		Metrics: m,
		Logger:  lg,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		lg.Info("Server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	lg.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("failed to shutdown server", zap.Error(err))
	}
	return nil
}

// seed creates the super admin and the default feed catalogue on first boot
func seed(ctx context.Context, cfg *config.APIServerConfig, db database.Database, hasher password.Hasher, lg *zap.Logger) error {
	if err := database.InitFeedTypes(ctx, db); err != nil {
		return fmt.Errorf("failed to seed feed types: %w", err)
	}

	sa := cfg.SuperAdmin
	if sa.Email == "" || sa.Password == "" {
		lg.Warn("super admin is not configured, skipping seed")
		return nil
	}
	hash, err := hasher.Hash(sa.Password)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}
	created, err := database.InitSuperAdmin(ctx, db, sa.Email, hash, sa.FullName)
	if err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}
	if created {
		lg.Info("Created super admin", zap.String("email", sa.Email))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// housekeeping registers the periodic sweeps of in-process state
func housekeeping(lg *zap.Logger, every time.Duration, revoked revocation.Store, stats *cache.Cache) (*scheduler.Scheduler, error) {
	s := scheduler.New(lg)
	if p, ok := revoked.(revocation.Pruner); ok {
		err := s.Add(scheduler.Task{Name: "revocation-prune", Interval: every, Run: func(context.Context) error {
			if n := p.Prune(); n > 0 {
				lg.Debug("pruned revoked tokens", zap.Int("count", n))
			}
			return nil
		}})
		if err != nil {
			return nil, err
		}
	}
	if stats != nil {
		err := s.Add(scheduler.Task{Name: "stats-cache-sweep", Interval: every, Run: func(context.Context) error {
			stats.Sweep()
			return nil
		}})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}
