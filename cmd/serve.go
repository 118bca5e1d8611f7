package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/whispernet/internal/api"
	"github.com/jon4hz/whispernet/internal/cache"
	"github.com/jon4hz/whispernet/internal/config"
	"github.com/jon4hz/whispernet/internal/database"
	"github.com/jon4hz/whispernet/internal/password"
	"github.com/jon4hz/whispernet/internal/scheduler"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the whispernet server",
	Long:  `Start the whispernet server to serve the message board api.`,
	Example: `whispernet serve --config config.yml
whispernet serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	_, client, err := openDatabaseWithConfig(cfg)
	if err != nil {
		return err
	}
	defer client.Close() //nolint: errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := seedBootstrapAdmin(ctx, client, cfg.Auth.BootstrapAdmin); err != nil {
		return err
	}

	boardCache, err := cache.NewBoardCache(cfg.Cache, cfg.GetCacheTTL())
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	db := cache.WrapDB(client, boardCache)

	sched, err := scheduler.New()
	if err != nil {
		return err
	}
	if err := addBoardJobs(sched, cfg, client, boardCache); err != nil {
		return err
	}

	server, err := api.New(cfg, db)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Run)
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		return sched.Stop()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	log.Info("whispernet started successfully", "listen", cfg.Listen, "cache", cfg.Cache.Type)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// seedBootstrapAdmin creates the configured admin unless an admin with that name exists.
func seedBootstrapAdmin(ctx context.Context, db database.DB, b *config.BootstrapAdminConfig) error {
	if b == nil || b.Username == "" {
		return nil
	}

	_, err := db.GetAdminByUsername(ctx, b.Username)
	if err == nil {
		log.Debug("bootstrap admin already exists", "username", b.Username)
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	hash, err := password.Hash(b.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}
	admin := &database.Admin{
		Username:    b.Username,
		Password:    &hash,
		DisplayName: b.DisplayName,
	}
	if err := db.CreateAdmin(ctx, admin); err != nil && !errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Info("created bootstrap admin", "username", b.Username)
	return nil
}

// loadServerConfig loads the config and checks the settings the web server depends on.
func loadServerConfig() (*config.Config, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	return cfg, nil
}

// addBoardJobs schedules the cache warm-up whenever a cache exists and the stats job when enabled.
func addBoardJobs(sched *scheduler.Scheduler, cfg *config.Config, db database.DB, bc *cache.BoardCache) error {
	if bc != nil {
		if err := sched.AddWarmCacheJob(db, bc, cfg.GetCacheWarmInterval()); err != nil {
			return fmt.Errorf("failed to add cache job: %w", err)
		}
	}
	if cfg.Stats != nil && cfg.Stats.Enabled {
		if err := sched.AddStatsJob(db, bc, cfg.GetStatsInterval()); err != nil {
			return fmt.Errorf("failed to add stats job: %w", err)
		}
	}
	return nil
}
