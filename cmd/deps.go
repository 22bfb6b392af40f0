package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/logging"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/nootencorp/worklog/internal/tui"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Stdin       io.Reader
	Exit        func(code int)
	StoragePath func() (string, error)
	ConfigPath  func() (string, error)
	LogPath     func() (string, error)
	// IsTerminal reports whether Stdout is an interactive terminal
	IsTerminal func() bool
	RunTUI     func(services *service.Services) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		StoragePath: storage.GetStoragePath,
		ConfigPath:  config.GetConfigPath,
		LogPath:     logging.GetLogPath,
		IsTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		RunTUI: tui.Run,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
