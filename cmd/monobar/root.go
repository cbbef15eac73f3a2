package monobar

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vasylcode/monobar/internal/config"
	"github.com/vasylcode/monobar/internal/logging"
	"github.com/vasylcode/monobar/internal/version"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "monobar",
	Short: "Monobar - monobank accounts, jars and rates in the terminal",
	Long: `Monobar shows your monobank accounts, jars and currency rates,
keeps the items you care about pinned on top and caches everything locally
so the last known state is always at hand.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var cfg config.Config

// Execute executes the root command
func Execute() error {
	defer func() { _ = logging.L().Sync() }()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Version = version.Version
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		er(fmt.Sprintf("Failed to load configuration: %v", err))
		return
	}

	logConfig := logging.DefaultConfig(cfg.LogFile)
	logConfig.Level = cfg.LogLevel
	logConfig.Format = cfg.LogFormat
	logger, err := logging.New(logConfig)
	if err != nil {
		er(fmt.Sprintf("Failed to initialize logger: %v", err))
		return
	}
	logging.SetGlobal(logger)
	logger.Debug("Configuration loaded", zap.String("data_dir", cfg.DataDir), zap.Duration("cache_ttl", cfg.CacheTTL))
}

func mustApp() *app {
	a, err := newApp()
	if err != nil {
		er(err)
	}
	return a
}

// printNotices reports failed fetches. The cached data is still printed.
func printNotices(notices []string) {
	for _, n := range notices {
		fmt.Fprintln(os.Stderr, color.New(color.FgYellow).Sprint(n))
	}
}

func er(msg interface{}) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", msg)
	os.Exit(1)
}
