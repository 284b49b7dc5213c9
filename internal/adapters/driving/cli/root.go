// Package cli implements the personarank command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/personarank/internal/adapters/driven/ai"
	"github.com/custodia-labs/personarank/internal/adapters/driven/config/file"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
	"github.com/custodia-labs/personarank/internal/core/services"
	"github.com/custodia-labs/personarank/internal/logger"
)

// version is set at build time.
var version = "dev"

// settingsService is shared by every command. It is built on first use
// unless injected with SetSettingsService.
var settingsService driving.SettingsService

var (
	verbose   bool
	configDir string
	envFile   string
)

var rootCmd = &cobra.Command{
	Use:   "personarank",
	Short: "Rank document sections for a persona and a job to be done",
	Long: `personarank reads a collection of documents, splits them into text
sections, and ranks every section by how relevant it is to a persona and
the job that persona needs done.

The ranked sections are written as a JSON report that can be browsed with
'personarank view' or served to AI assistants with 'personarank mcp serve'.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "settings directory (default ~/.personarank)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file of environment variables to load")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService injects the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// setup runs before every command.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settingsService = services.NewSettingsService(store, ai.NewConfigValidator())
	return nil
}
