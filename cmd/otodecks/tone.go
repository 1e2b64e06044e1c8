// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/otodecks/formats/wav"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/sampler"
	"github.com/ik5/otodecks/utils"
	"github.com/spf13/cobra"
)

const toneFade = 5 * time.Millisecond

var toneCmd = &cobra.Command{
	Use:   "tone <id>",
	Short: "Write a sine burst as a one-shot sample",
	Long: `Write a mono 16-bit WAV sine burst named <id>.wav into the samples
directory, ready for "trig <id>".`,
	Args: cobra.ExactArgs(1),
	RunE: runTone,
}

func init() {
	toneCmd.Flags().Float64("freq", 440, "frequency in Hz")
	toneCmd.Flags().Duration("duration", 250*time.Millisecond, "burst length")
	toneCmd.Flags().Float64("level", -6, "peak level in dBFS")
	rootCmd.AddCommand(toneCmd)
}

func runTone(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := samplesDir(cfg)
	if dir == "" {
		return sampler.ErrNoSamplesDir
	}

	freq, _ := cmd.Flags().GetFloat64("freq")
	duration, _ := cmd.Flags().GetDuration("duration")
	level, _ := cmd.Flags().GetFloat64("level")
	if freq <= 0 || duration <= 0 {
		return errors.New("freq and duration must be positive")
	}

	rate := cfg.Audio.SampleRate
	pcm := sineBurst(rate, freq, duration, float32(utils.DBToGain(level)))

	path := filepath.Join(dir, args[0]+".wav")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := wav.WriteWAV16(f, rate, 1, pcm); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	logger.WithComponent("cli").Info("tone written", "path", path, "freq", freq, "duration", duration)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// sineBurst renders a sine at peak gain with short linear fades at both ends.
func sineBurst(rate int, freq float64, d time.Duration, gain float32) []int16 {
	n := int(d.Seconds() * float64(rate))
	fade := max(int(toneFade.Seconds()*float64(rate)), 1)

	pcm := make([]int16, n)
	for i := range pcm {
		env := float32(1)
		if k := min(i, n-1-i); k < fade {
			env = float32(k) / float32(fade)
		}
		s := float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
		pcm[i] = utils.Float32ToInt16(gain * env * s)
	}
	return pcm
}
