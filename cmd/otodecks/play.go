// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/otodecks"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/output"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the audio device and mix from the console",
	Long: `Open the audio device and read control commands from stdin until EOF,
"quit" or an interrupt. Type "help" for the command list.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().String("deck-a", "", "track to load on deck A")
	playCmd.Flags().String("deck-b", "", "track to load on deck B")
	playCmd.Flags().Bool("autoplay", false, "start the loaded decks immediately")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.WithComponent("cli")

	opts, err := engineOptions(cfg, samplesDir(cfg))
	if err != nil {
		return err
	}
	engine := otodecks.New(opts)
	defer engine.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Samples.Preload && opts.SamplesDir != "" {
		if err := engine.Preload(ctx); err != nil {
			log.Warn("sample preload failed", "dir", opts.SamplesDir, "error", err)
		}
	}

	autoplay, _ := cmd.Flags().GetBool("autoplay")
	for i, flag := range []string{"deck-a", "deck-b"} {
		path, _ := cmd.Flags().GetString(flag)
		if path == "" {
			continue
		}
		d := engine.Deck(i)
		if err := d.Load(path); err != nil {
			return err
		}
		if autoplay {
			d.Transport().Start()
		}
	}

	out, err := output.New(engine, output.Options{
		BufferSize:  cfg.Audio.Buffer,
		BlockFrames: cfg.Audio.BlockSize,
	})
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Warn("closing output", "error", err)
		}
	}()

	engine.Start(ctx)
	out.Start()

	c := newConsole(engine, cmd.OutOrStdout())
	err = c.run(ctx, cmd.InOrStdin())
	if ctx.Err() != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "\nshutting down")
		return nil
	}
	return err
}

