// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/ik5/audpool/formats"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintf(out, "  Output: %d Hz, %d channel(s), start suspended %v\n",
			cfg.Output.SampleRate, cfg.Output.Channels, cfg.Output.StartSuspended)
		fmt.Fprintf(out, "  Master volume: %g\n", cfg.Master.Volume)
		fmt.Fprintf(out, "  Logging: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		if cfg.BaseURL != "" {
			fmt.Fprintf(out, "  Base URL: %s\n", cfg.BaseURL)
		}
		fmt.Fprintf(out, "  Sounds:\n")
		for i, e := range cfg.Entries() {
			fmt.Fprintf(out, "    %d. %s [%s] %s\n", i, e.Name, e.Kind, strings.Join(e.Src, ", "))
		}
		return nil
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats [media-type...]",
	Short: "List decodable formats or probe media types",
	Run: func(cmd *cobra.Command, args []string) {
		reg := formats.NewRegistry()
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			for _, f := range reg.Formats() {
				fmt.Fprintln(out, f)
			}
			return
		}
		for _, mt := range args {
			answer := string(reg.CanPlayType(mt))
			if answer == "" {
				answer = "no"
			}
			fmt.Fprintf(out, "%s: %s\n", mt, answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd, formatsCmd)
	configCmd.AddCommand(configValidateCmd, configShowCmd)
}
