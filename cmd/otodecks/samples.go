// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/otodecks/formats"
	"github.com/ik5/otodecks/sampler"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the one-shot samples available to trig",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := samplesDir(cfg)
		ids, err := sampler.New(cfg.Audio.SampleRate, formats.NewRegistry(), dir).IDs()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", dir)
		for _, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
