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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-rampshare/internal/config"
)

func newSplitCmd(cfg *Config) *cobra.Command {
	var (
		message     string
		messageFile string
		reveal      bool
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Seal a message and split it into participant shares",
		Long: `Seal a message in an envelope and split the envelope into one share per
participant. The set is saved to the configured storage backend.

The message is read from --message, from --message-file, or from standard
input when --message-file is "-".`,
		Example: `  rampshare split --storage file --path ./shares --message "attack at dawn"
  echo -n "attack at dawn" | rampshare split --message-file - -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, message, messageFile)
			if err != nil {
				return err
			}

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

			printVerbose(cmd, cfg, "Splitting %d-byte message with %s", len(msg), d.Scheme().Params())
			set, err := d.Deal(cmd.Context(), msg)
			if err != nil {
				return fmt.Errorf("failed to split message: %w", err)
			}

			if cfg.Settings.Storage.Backend == config.BackendMemory {
				fmt.Fprintln(cmd.ErrOrStderr(),
					"Warning: memory storage is discarded on exit; use --storage file to keep the shares")
			}
			return NewPrinter(cfg.OutputFormat, cmd.OutOrStdout()).PrintSet(set, reveal)
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "message to split")
	cmd.Flags().StringVar(&messageFile, "message-file", "", `file holding the message ("-" for stdin)`)
	cmd.Flags().BoolVar(&reveal, "reveal", false, "include share values in JSON output")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")

	return cmd
}

func readMessage(cmd *cobra.Command, message, messageFile string) (string, error) {
	switch {
	case messageFile == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read message from stdin: %w", err)
		}
		return string(data), nil
	case messageFile != "":
		data, err := os.ReadFile(messageFile)
		if err != nil {
			return "", fmt.Errorf("failed to read message file: %w", err)
		}
		return string(data), nil
	case cmd.Flags().Changed("message"):
		return message, nil
	default:
		return "", fmt.Errorf("one of --message or --message-file is required")
	}
}
