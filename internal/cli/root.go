package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/merchant/internal/cache"
	"github.com/ppiankov/merchant/internal/model"
)

var (
	cfgFile string
	verbose bool
	echo    bool
	noCache bool

	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "merchant",
	Short: "Merchant - intergalactic numeral and trade notes interpreter",
	Long: `Merchant reads your trading notes and answers questions about them.

Notes bind alien words to numeral symbols, price goods in Credits, and ask
how much a quantity is worth:

  glob is I
  prok is V
  glob glob Silver is 34 Credits
  how many Credits is glob prok Silver ?

Run without arguments to start an interactive session.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runChat,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Merchant.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "merchant v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.merchant/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&echo, "echo", false, "write an empty line for statements instead of staying silent")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable numeral conversion cache")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("session.echo_success", rootCmd.PersistentFlags().Lookup("echo"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.merchant")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MERCHANT_*
	viper.SetEnvPrefix("MERCHANT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars can override it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("session.echo_success", cfg.Session.EchoSuccess)
	viper.SetDefault("session.stop_word", cfg.Session.StopWord)
	viper.SetDefault("session.farewell", cfg.Session.Farewell)
	viper.SetDefault("session.prompt", cfg.Session.Prompt)
	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("rate_limiting.sessions_per_second", cfg.RateLimiting.SessionsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
}

// loadConfig overlays config file, env and flag values on the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

// newCache builds the numeral conversion cache described by cfg
func newCache(cfg model.CacheConfig) cache.Cache {
	if !cfg.Enabled {
		return cache.NopCache{}
	}
	return cache.NewMemoryCache(cfg.TTL, cfg.CleanupInterval)
}
