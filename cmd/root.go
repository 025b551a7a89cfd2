package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	coreconfig "github.com/nextplot/nextplot-gw/core/config"
	"github.com/nextplot/nextplot-gw/pkg/utils"
)

var (
	flagPort  string
	flagDebug bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nextplot-gw",
	Short: "LINE webhook gateway for NextPlot",
	Long: `Receives LINE Messaging API webhook events, verifies their signature,
extracts CODE and deed numbers from free text, uploads attached media to
Supabase Storage and persists normalized records.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initEnvConfig)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
}

// initEnvConfig loads configuration from environment variables, then applies
// viper/flag overrides on top.
func initEnvConfig() {
	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	if envPort := viper.GetString("app_port"); envPort != "" {
		cfg.App.Port = envPort
	}
	if flagPort != "" {
		cfg.App.Port = flagPort
	}
	if flagDebug || viper.GetBool("app_debug") {
		cfg.App.Debug = true
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
