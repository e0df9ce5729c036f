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

	"github.com/jeremyhahn/go-rampshare/pkg/metrics"
)

func newListCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored share sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			done := metrics.Track(metrics.OpList)
			defer func() { done(err) }()

			store, err := cfg.CreateStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Backend().Close() }()

			ids, err := store.List()
			if err != nil {
				return fmt.Errorf("failed to list share sets: %w", err)
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintSetList(ids)
		},
	}
}

func newDeleteCmd(cfg *Config) *cobra.Command {
	var setID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored share set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			done := metrics.Track(metrics.OpDelete)
			defer func() { done(err) }()

			store, err := cfg.CreateStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Backend().Close() }()

			if err := store.Delete(setID); err != nil {
				return fmt.Errorf("failed to delete share set: %w", err)
			}
			printVerbose(cmd, cfg, "Deleted share set %s", setID)
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintSuccess(fmt.Sprintf("Deleted share set %s", setID))
		},
	}

	cmd.Flags().StringVar(&setID, "set", "", "share set ID")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}
