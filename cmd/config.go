package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nootencorp/worklog/internal/service"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the effective configuration for worklog.

worklog works without a configuration file. Settings are read from
config.toml in the worklog config directory, then overridden by the
WORKLOG_DATABASE and WORKLOG_LOG_LEVEL environment variables, then by
the --db flag.

Examples:
  worklog config         Show the config file location and current settings
  worklog config init    Write a commented sample config file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Long:  `Write a commented sample config.toml. An existing file is never overwritten.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return
	}
	svc := service.NewConfigService(configPath, cfg)

	rendered, err := cfg.Render()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to render configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for worklog")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", svc.Path())
	if svc.FromFile() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprint(deps.Stdout, rendered)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !svc.FromFile() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'worklog config init' to create a sample config file.")
	}
}

// initConfig writes the sample config file
func initConfig() {
	cfg, configPath, ok := loadConfig()
	if !ok {
		return
	}

	if err := service.NewConfigService(configPath, cfg).Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if errors.Is(err, service.ErrConfigExists) {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Edit or remove the existing file: %s\n", configPath)
		} else {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the config directory is writable")
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", configPath)
}
