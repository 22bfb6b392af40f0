// Package logging builds the application's zap logger from configuration.
// Logs go to a file so the interactive prompts on the terminal stay clean.
package logging

import (
	"fmt"

	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/osutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFile is the default log file name inside the application directory
const LogFile = "worklog.log"

// GetLogPath returns the default log file path.
func GetLogPath() (string, error) {
	return osutil.AppFile(LogFile)
}

// New returns a logger configured by cfg. A log level of "off" yields a no-op logger.
// When verbose is set the level is forced to debug.
func New(cfg config.Config, verbose bool) (*zap.Logger, error) {
	if cfg.LogLevel == config.LogLevelOff && !verbose {
		return zap.NewNop(), nil
	}

	var level zap.AtomicLevel
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		parsed, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}

	logPath := cfg.LogFile
	if logPath == "" {
		var err error
		logPath, err = GetLogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to determine log location: %w", err)
		}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named(osutil.AppName), nil
}
