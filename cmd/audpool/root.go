// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/internal/config"
	"github.com/ik5/audpool/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool

	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "audpool",
	Short: "Play short sounds through bounded voice pools",
	Long: `audpool registers the sounds listed in its config file, loads them in the
background and plays them through a fixed number of voices per sound.

Use "play" to hear them on the default output device and "render" to mix
them offline into a WAV file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Int("sample-rate", 0, "output sample rate in Hz")
	rootCmd.PersistentFlags().Int("channels", 0, "output channels (1 or 2)")
	rootCmd.PersistentFlags().Float64("volume", 1, "master volume")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	bind := map[string]string{
		"output.sample_rate": "sample-rate",
		"output.channels":    "channels",
		"master.volume":      "volume",
		"logging.level":      "log-level",
		"logging.format":     "log-format",
	}
	for key, flag := range bind {
		_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}
}

// initConfig applies flags that override the config file.
func initConfig() {
	if verbose {
		v.Set("logging.level", "debug")
	}
}

// loadConfig reads and validates the configuration and installs the logger
// it asks for.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadViper(v, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// diagnostics logs what the mixer absorbed, at the command's own component.
func diagnostics() func(audpool.Diagnostic) {
	log := logger.WithComponent("cli")
	return func(d audpool.Diagnostic) {
		log.Info("sound diagnostic", slog.String("detail", d.String()))
	}
}
