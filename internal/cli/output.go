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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
	"github.com/jeremyhahn/go-rampshare/pkg/shares"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatTable OutputFormat = "table"
)

// ValidateOutputFormat reports whether format is supported.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatText, OutputFormatJSON, OutputFormatTable:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s (must be text, json, or table)", format)
	}
}

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintSet prints a dealt share set. Share values are printed only in JSON
// output and only when reveal is set.
func (p *Printer) PrintSet(set *shares.Set, reveal bool) error {
	switch p.format {
	case OutputFormatJSON:
		records := make([]map[string]interface{}, len(set.Records))
		for i, r := range set.Records {
			record := map[string]interface{}{
				"index":    r.Index,
				"length":   r.Length,
				"checksum": r.Checksum,
			}
			if reveal {
				record["value"] = r.Value
			}
			records[i] = record
		}
		return p.printJSON(map[string]interface{}{
			"set_id":    set.ID,
			"n":         set.Params.N,
			"k":         set.Params.K,
			"m":         set.Params.M,
			"coalition": set.Coalition.String(),
			"members":   set.Coalition.Members(set.Params),
			"shares":    records,
		})
	case OutputFormatTable:
		fmt.Fprintf(p.writer, "Set: %s (%s, %s)\n", set.ID, set.Params, set.Coalition)
		fmt.Fprintf(p.writer, "%-8s %-10s %-64s\n", "INDEX", "BITS", "CHECKSUM")
		fmt.Fprintln(p.writer, strings.Repeat("-", 84))
		for _, r := range set.Records {
			fmt.Fprintf(p.writer, "%-8d %-10d %-64s\n", r.Index, r.Length, r.Checksum)
		}
		return nil
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Set ID:    %s\n", set.ID)
		fmt.Fprintf(p.writer, "Params:    %s\n", set.Params)
		fmt.Fprintf(p.writer, "Coalition: %s %v\n", set.Coalition, set.Coalition.Members(set.Params))
		fmt.Fprintln(p.writer, "Shares:")
		for _, r := range set.Records {
			fmt.Fprintf(p.writer, "  - participant %d: %d bits, checksum %s\n", r.Index, r.Length, r.Checksum[:16])
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintMessage prints a recovered message
func (p *Printer) PrintMessage(setID, message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"set_id":  setID,
			"message": message,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSetList prints a list of set IDs
func (p *Printer) PrintSetList(ids []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"sets": ids,
		})
	case OutputFormatTable:
		if len(ids) == 0 {
			fmt.Fprintln(p.writer, "No share sets found")
			return nil
		}
		fmt.Fprintf(p.writer, "%-40s\n", "SET ID")
		fmt.Fprintln(p.writer, strings.Repeat("-", 40))
		for _, id := range ids {
			fmt.Fprintf(p.writer, "%-40s\n", id)
		}
		return nil
	case OutputFormatText:
		if len(ids) == 0 {
			fmt.Fprintln(p.writer, "No share sets found")
			return nil
		}
		fmt.Fprintln(p.writer, "Share sets:")
		for _, id := range ids {
			fmt.Fprintf(p.writer, "  - %s\n", id)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintScheme prints the combination matrix, the mandatory block and the
// participant masks of scheme.
func (p *Printer) PrintScheme(scheme *ramp.Scheme) error {
	params := scheme.Params()
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"n":                 params.N,
			"k":                 params.K,
			"m":                 params.M,
			"combinations":      bitStrings(scheme.Combinations()),
			"mandatory":         bitStrings(scheme.MandatoryMask()),
			"participant_masks": bitStrings(scheme.ParticipantMasks()),
			"mask_width":        scheme.MaskWidth(),
			"coalition":         scheme.CoalitionPolicy().String(),
			"members":           scheme.Coalition(),
			"uncovered":         scheme.Uncovered(),
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "Scheme: %s\n", params)
		fmt.Fprintf(p.writer, "Mask width: %d (C(%d,%d) = %d + %d)\n",
			scheme.MaskWidth(), params.N, params.Zeros(), params.Combinations(), params.M)
		fmt.Fprintf(p.writer, "Coalition: %s %v\n", scheme.CoalitionPolicy(), scheme.Coalition())
		if uncovered := scheme.Uncovered(); len(uncovered) > 0 {
			fmt.Fprintf(p.writer, "Uncovered positions: %v\n", uncovered)
		}
		fmt.Fprintln(p.writer, "\nCombinations:")
		p.printMatrix(scheme.Combinations())
		fmt.Fprintln(p.writer, "\nMandatory mask:")
		p.printMatrix(scheme.MandatoryMask())
		fmt.Fprintln(p.writer, "\nParticipant masks:")
		for i, mask := range scheme.ParticipantMasks() {
			fmt.Fprintf(p.writer, "  %2d: %s\n", i, mask)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

func (p *Printer) printMatrix(m ramp.Matrix) {
	if len(m) == 0 || m.Cols() == 0 {
		fmt.Fprintln(p.writer, "  (empty)")
		return
	}
	for _, row := range m {
		fmt.Fprintf(p.writer, "  %s\n", row)
	}
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func bitStrings[T ~[]ramp.Bits](rows T) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.String()
	}
	return out
}
