// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/audpool/output"
	"github.com/spf13/cobra"
)

const fadeOut = 250 * time.Millisecond

var (
	playDuration time.Duration
	playSrc      []string
)

var playCmd = &cobra.Command{
	Use:   "play [sound...]",
	Short: "Play sounds on the default output device",
	Long: `Play loads the configured sounds and plays the named ones (or all of them)
once the output device is ready. It runs until interrupted, or for
--duration when given.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().DurationVarP(&playDuration, "duration", "d", 0, "stop after this long (0 waits for a signal)")
	playCmd.Flags().StringSliceVar(&playSrc, "src", nil, "extra sound sources, most preferred first")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if playDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, playDuration)
		defer cancel()
	}

	spk, err := output.NewSpeaker(cfg.Output.SampleRate, cfg.Output.Channels, slog.Default())
	if err != nil {
		return err
	}
	defer spk.Close()

	eo := cfg.Engine()
	eo.ResumeGate = spk.WaitReady

	m, err := setup(ctx, cfg, eo, playSrc)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := spk.Play(m.Context()); err != nil {
		return err
	}

	select {
	case <-m.Running():
		trigger(m, args)
	case <-ctx.Done():
		return nil
	}

	<-ctx.Done()
	m.FadeGlobalVolume(0, fadeOut)
	time.Sleep(fadeOut)

	if err := spk.Err(); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nStopped")
	return nil
}
