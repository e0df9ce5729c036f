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
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rampshare/pkg/metrics"
)

// NewRootCmd builds the rampshare command tree.
func NewRootCmd() *cobra.Command {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:   "rampshare",
		Short: "rampshare - combinatorial ramp secret sharing",
		Long: `rampshare seals a message in an authenticated envelope and splits the
envelope bits into one share per participant using combinatorial access
masks. The designated coalition of k participants, which includes the m
mandatory participants, ORs its shares to recover the envelope.

Storage backends:
  - memory: shares live for the duration of the command
  - file:   shares are written under --path as sets/<id>/<index>.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.writeMetrics()
		},
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "",
		"config file (YAML); RAMPSHARE_CONFIG is used when unset")
	flags.Int("n", 0, "number of participants")
	flags.Int("k", 0, "designated coalition size")
	flags.Int("m", 0, "number of mandatory participants")
	flags.String("coalition", "", "reconstruction coalition (mandatory-first, last-k)")
	flags.String("storage", "", "storage backend (memory, file)")
	flags.String("path", "", "directory for the file storage backend")
	flags.String("algorithm", "", "envelope AEAD algorithm (aes256-gcm, chacha20-poly1305, auto)")
	flags.StringVarP(&cfg.OutputFormat, "output", "o", string(OutputFormatText),
		"output format (text, json)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd(cfg))
	rootCmd.AddCommand(newSplitCmd(cfg))
	rootCmd.AddCommand(newCombineCmd(cfg))
	rootCmd.AddCommand(newInspectCmd(cfg))
	rootCmd.AddCommand(newListCmd(cfg))
	rootCmd.AddCommand(newDeleteCmd(cfg))

	return rootCmd
}

// Execute runs the root command with args from os.Args. Errors are printed
// to errOut in the selected output format and returned.
func Execute(ctx context.Context, errOut io.Writer) error {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("output")
		printer := NewPrinter(format, errOut)
		if perr := printer.PrintError(err); perr != nil {
			// Unknown format; fall back to text.
			_ = NewPrinter(string(OutputFormatText), errOut).PrintError(err)
		}
	}
	return err
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(cmd *cobra.Command, cfg *Config, format string, args ...interface{}) {
	if cfg.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] "+format+"\n", args...)
	}
}

// writeMetrics exports the metrics textfile when one is configured.
func (c *Config) writeMetrics() error {
	if c.Settings == nil || !c.Settings.Metrics.Enabled || c.Settings.Metrics.Textfile == "" {
		return nil
	}
	return metrics.WriteTextfile(c.Settings.Metrics.Textfile)
}
