package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/rankdiff-cli/internal/config"
	"github.com/KaramelBytes/rankdiff-cli/internal/logging"
)

var (
	// Global flags
	cfgFile      string
	debug        bool
	flagLogLevel string

	// Loaded configuration
	cfg *cfgpkg.Global

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "rankdiff",
	Short: "rankdiff: compare school ranking reports across two school years",
	Long: `rankdiff reads two school-year ranking spreadsheets (conduct and study results per class),
detects their layout, lets you choose which classes to include, and compares school, grade
and class results year over year. Comparisons print as tables or export to xlsx, pdf and png.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.rankdiff/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{ScanRows: 15, LogLevel: "warn"}
	}
	cfg = c

	if rootCmd.PersistentFlags().Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	setupLogger()
}

func setupLogger() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	l, closer, err := logging.New(os.Stderr, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logging to file disabled: %v\n", err)
		l, closer, _ = logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}
	logCloser = closer
	slog.SetDefault(l)
}
