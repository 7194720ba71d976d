// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ik5/audpool/formats/wav"
	"github.com/spf13/cobra"
)

var (
	renderOut      string
	renderDuration time.Duration
	renderSrc      []string
)

var renderCmd = &cobra.Command{
	Use:   "render [sound...]",
	Short: "Mix sounds offline into a WAV file",
	Long: `Render loads the configured sounds, plays the named ones (or all of them)
at time zero and writes the mix as 16-bit PCM WAV at the output rate.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "out.wav", "output WAV file")
	renderCmd.Flags().DurationVarP(&renderDuration, "duration", "d", 2*time.Second, "length of the mix")
	renderCmd.Flags().StringSliceVar(&renderSrc, "src", nil, "extra sound sources, most preferred first")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if renderDuration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", renderDuration)
	}

	eo := cfg.Engine()
	eo.StartSuspended = false

	m, err := setup(cmd.Context(), cfg, eo, renderSrc)
	if err != nil {
		return err
	}
	defer m.Close()

	trigger(m, args)

	c := m.Context()
	frames := int(renderDuration.Seconds() * float64(c.SampleRate()))
	mix := make([]float32, frames*c.Channels())
	if _, err := c.Render(mix); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return err
	}
	if err := wav.WriteFloatWAV16(f, c.SampleRate(), c.Channels(), mix); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", renderOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Wrote:", renderOut)
	return nil
}
