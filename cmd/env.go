package cmd

import (
	"fmt"

	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/logging"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is everything a command needs to work with the database
type env struct {
	cfg        config.Config
	configPath string
	logger     *zap.Logger
	store      *storage.Store
	services   *service.Services
}

// exit closes the env, then exits. Deferred calls do not run after os.Exit.
func (e *env) exit(code int) {
	e.close()
	deps.Exit(code)
}

// close releases the store and flushes the logger. Calling it again is harmless.
func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("failed to close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// loadConfig resolves the config path and loads it, falling back to defaults
// when no file exists. Errors are reported and false is returned.
func loadConfig() (config.Config, string, bool) {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return config.Config{}, "", false
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
		deps.Exit(1)
		return config.Config{}, "", false
	}

	return cfg, configPath, true
}

// flagValue returns the value of a local or inherited flag, or "" when the
// command has no such flag
func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// openEnv loads config, builds the logger and opens the store.
// The --db flag takes precedence over the configured database path.
// Errors are reported and false is returned; callers must close a returned env.
func openEnv(cmd *cobra.Command) (*env, bool) {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return nil, false
	}

	if db := flagValue(cmd, "db"); db != "" {
		cfg.DatabasePath = db
	}
	verbose := flagValue(cmd, "verbose") == "true"

	if cfg.LogFile == "" && (cfg.LogLevel != config.LogLevelOff || verbose) {
		logPath, err := deps.LogPath()
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine log file location")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set log_file in the config file or use log_level = \"off\"")
			deps.Exit(1)
			return nil, false
		}
		cfg.LogFile = logPath
	}

	logger, err := logging.New(cfg, verbose)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize logging")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check log_level and log_file in %s\n", configPath)
		deps.Exit(1)
		return nil, false
	}

	storagePath := cfg.DatabasePath
	if storagePath == "" {
		storagePath, err = deps.StoragePath()
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine storage location")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
			deps.Exit(1)
			return nil, false
		}
	}

	store, err := storage.Open(cfg.Driver, storagePath, logger)
	if err != nil {
		logger.Error("failed to open store", zap.String("path", storagePath), zap.Error(err))
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open the work log database")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the directory exists and is writable: %s\n", storagePath)
		_ = logger.Sync()
		deps.Exit(1)
		return nil, false
	}

	return &env{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		store:      store,
		services:   service.NewServices(store, configPath, cfg, logger),
	}, true
}

// reportStoreError prints a failure to read or write the database
func (e *env) reportStoreError(action string, err error) {
	e.logger.Error("store failure", zap.String("action", action), zap.Error(err))
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to %s\n", action)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintf(deps.Stderr, "Hint: Run 'worklog validate' to check the database: %s\n", e.store.Path())
	e.exit(1)
}
