// Package cmd contains the CLI commands for the unera terminal client
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unera-social/unera-tui/internal/catalog"
	"github.com/unera-social/unera-tui/internal/config"
	"github.com/unera-social/unera-tui/internal/tui"
	"github.com/unera-social/unera-tui/pkg/models"
)

var (
	cfgFile  string
	verbose  bool
	userName string
	cfg      *config.Config
	logger   zerolog.Logger
	version  = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "unera",
	Short: "UNERA social network terminal client",
	Long: `unera is a terminal client for the UNERA social network's help center
and stories features.

Running it without a subcommand opens the interactive UI: the story
reel on the home screen, a creation wizard behind the create tile, and
the help center behind "?".

Example usage:
  unera                        # Open the interactive UI
  unera articles               # List the help catalog
  unera articles --search foo  # Search the help catalog
  unera songs                  # List the song catalog`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/unera/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&userName, "user", "", "session display name (overrides config)")

	// Bind flags to viper; UNERA_USER and friends work via the env
	// prefix, and a .env file is honored when present.
	viper.SetEnvPrefix("UNERA")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
}

// initConfig reads the .env file, the config file, and sets up logging.
func initConfig() error {
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if name := viper.GetString("user"); name != "" {
		cfg.Session.UserName = name
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	// The TUI owns the terminal, so logs go to a file.
	logger = zerolog.Nop()
	if err := os.MkdirAll(filepath.Dir(cfg.Logging.Path), 0755); err == nil {
		if f, err := os.OpenFile(cfg.Logging.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
		}
	}

	logger.Debug().
		Str("config", path).
		Str("user", cfg.Session.UserName).
		Msg("configuration loaded")

	return nil
}

// openCatalog opens the in-memory store and seeds the fixed catalogs,
// plus any extra articles from the configured local feed file.
func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	store, err := catalog.Open()
	if err != nil {
		return nil, err
	}

	if err := catalog.SeedAll(cmd.Context(), store); err != nil {
		store.Close()
		return nil, fmt.Errorf("seeding catalogs: %w", err)
	}

	if cfg.Import.FeedPath != "" {
		importer := catalog.NewImporter(store)
		added, err := importer.ImportFile(cfg.Import.FeedPath, models.Category(cfg.Import.Category))
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.Import.FeedPath).Msg("feed import failed")
		} else if added > 0 {
			logger.Info().Int("articles", added).Msg("imported help articles from feed")
		}
	}

	return store, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := catalog.SeedDemoStories(store); err != nil {
		return fmt.Errorf("seeding demo stories: %w", err)
	}

	app := tui.New(cfg, store, logger)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
