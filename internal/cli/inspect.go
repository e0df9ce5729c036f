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
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rampshare/pkg/metrics"
	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
)

func newInspectCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the masks of the configured scheme",
		Long: `Print the combination matrix, the mandatory block and every participant
mask for the configured n, k and m, together with the coalition and any
mask positions it does not cover.`,
		Example: `  rampshare inspect --n 7 --k 5 --m 3
  rampshare inspect --n 5 --k 3 --m 1 --coalition last-k -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := cfg.Settings.Params()
			if err != nil {
				return err
			}
			coalition, err := cfg.Settings.Coalition()
			if err != nil {
				return err
			}
			scheme := ramp.New(params, ramp.WithCoalition(coalition))
			metrics.SetMaskWidth(scheme.MaskWidth())
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintScheme(scheme)
		},
	}
}
