// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rampshare.
//
// go-rampshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCombineCmd(cfg *Config) *cobra.Command {
	var (
		setID        string
		participants []int
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Recover a message from a stored share set",
		Long: `Load a share set, OR the shares of its designated coalition and open the
recovered envelope.

--participants restricts recovery to the listed participant indices, for
example to check that the coalition alone is sufficient.`,
		Example: `  rampshare combine --storage file --path ./shares --set 5f0c...
  rampshare combine --storage file --path ./shares --set 5f0c... --participants 0,1,2,5,6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cfg.CreateLogger()
			if err != nil {
				return err
			}
			store, err := cfg.CreateStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Backend().Close() }()

			d, err := cfg.CreateDealer(store, log)
			if err != nil {
				return err
			}

			set, err := store.Load(setID)
			if err != nil {
				return fmt.Errorf("failed to load share set: %w", err)
			}
			if cmd.Flags().Changed("participants") {
				set = set.Select(participants...)
				printVerbose(cmd, cfg, "Using participants %v", set.Indices())
			}

			message, err := d.Recover(cmd.Context(), set)
			if err != nil {
				return fmt.Errorf("failed to recover message: %w", err)
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintMessage(set.ID, message)
		},
	}

	cmd.Flags().StringVar(&setID, "set", "", "share set ID")
	cmd.Flags().IntSliceVar(&participants, "participants", nil, "participant indices to use")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}
