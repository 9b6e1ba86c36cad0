package cmd

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stockpick/internal/catalog"
	"stockpick/internal/config"
	"stockpick/internal/session"
)

var (
	cfgFile     string
	catalogFile string
	delimiter   string
	verbose     bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stockpick",
	Short: "Browse an inventory catalog and build pick lists",
	Long: `Stockpick is a terminal tool for warehouse inventory catalogs. It loads a
CSV catalog, guesses which columns hold the product name and storage
location, and lets you search rows and collect products into a pick list
that exports as CSV.

Run without arguments to start the interactive browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if catalogFile != "" {
			cfg.Catalog = catalogFile
		}
		if delimiter != "" {
			cfg.Delimiter = delimiter
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = buildLogger(isInteractive(cmd))
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "catalog CSV file (overrides the configuration)")
	rootCmd.PersistentFlags().StringVarP(&delimiter, "delimiter", "d", "", "catalog delimiter, single character (auto-detected when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}
}

// isInteractive reports whether cmd takes over the terminal.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == cmd.Root().Name() || cmd.Name() == "tui"
}

// buildLogger keeps zap away from stderr while the TUI owns the screen; the
// interactive modes only log when a log file is configured.
func buildLogger(interactive bool) (*zap.Logger, error) {
	if interactive && cfg.Logging.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Logging.File != "" {
		zapCfg.OutputPaths = []string{cfg.Logging.File}
		zapCfg.ErrorOutputPaths = []string{cfg.Logging.File}
	}
	return zapCfg.Build()
}

func requireCatalog() (string, error) {
	if cfg.Catalog == "" {
		return "", fmt.Errorf("no catalog file configured (use --catalog or set catalog in %s)", config.DefaultPath)
	}
	return cfg.Catalog, nil
}

// loadSession loads the configured catalog and starts a session over it.
// Shared by the non-interactive commands.
func loadSession() (*session.Session, error) {
	path, err := requireCatalog()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(path, cfg.DelimiterRune())
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return session.New(cat, cfg, logger)
}
