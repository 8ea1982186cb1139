package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fileutils/internal/journal"
)

type historyFlags struct {
	limit    int
	op       string
	path     string
	failures bool
	stats    bool
	json     bool
}

func (a *app) historyCmd() *cobra.Command {
	var f historyFlags

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query the operation journal",
		Example: `  fileutils history --limit 10          # 10 most recent operations
  fileutils history --op rm_rf          # only rm_rf
  fileutils history --path '/srv/%'     # operations touching /srv
  fileutils history --failures          # failed operations
  fileutils history --stats             # totals`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.journal == nil {
				return fmt.Errorf("%w: journal.database_path is not set", errConfig)
			}
			return a.showHistory(f)
		},
	}

	cmd.Flags().IntVar(&f.limit, "limit", 20, "Maximum number of records")
	cmd.Flags().StringVar(&f.op, "op", "", "Filter by operation (mkdir_p, rm_rf, cp, ...)")
	cmd.Flags().StringVar(&f.path, "path", "", "Filter by path pattern (SQL LIKE syntax)")
	cmd.Flags().BoolVar(&f.failures, "failures", false, "Show only failed operations")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "Show journal statistics")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output in JSON format")
	cmd.MarkFlagsMutuallyExclusive("op", "path", "failures", "stats")
	return cmd
}

func (a *app) showHistory(f historyFlags) error {
	if f.stats {
		stats, err := a.journal.Stats()
		if err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}
		if f.json {
			return writeJSON(a.stdout, stats)
		}
		printStats(a.stdout, stats)
		return nil
	}

	var (
		records []journal.Record
		err     error
	)
	switch {
	case f.op != "":
		records, err = a.journal.ByOp(f.op, f.limit)
	case f.path != "":
		records, err = a.journal.ByPath(f.path, f.limit)
	case f.failures:
		records, err = a.journal.Failures(f.limit)
	default:
		records, err = a.journal.Recent(f.limit)
	}
	if err != nil {
		return fmt.Errorf("failed to query journal: %w", err)
	}

	if f.json {
		return writeJSON(a.stdout, records)
	}
	printRecords(a.stdout, records)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printStats(w io.Writer, s journal.Stats) {
	fmt.Fprintf(w, "Total Operations: %d\n", s.Total)
	fmt.Fprintf(w, "Failed:           %d\n", s.Failed)
	fmt.Fprintf(w, "Dry Runs:         %d\n", s.Noop)
	fmt.Fprintf(w, "Bytes Copied:     %s\n", formatBytes(s.BytesCopied))

	if len(s.ByOp) > 0 {
		ops := make([]string, 0, len(s.ByOp))
		for op := range s.ByOp {
			ops = append(ops, op)
		}
		sort.Strings(ops)

		fmt.Fprintln(w, "\nBy Operation:")
		for _, op := range ops {
			fmt.Fprintf(w, "  %-15s %d\n", op, s.ByOp[op])
		}
	}
}

func printRecords(w io.Writer, records []journal.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTimestamp\tOp\tMode\tResult\tPaths")
	_, _ = fmt.Fprintln(tw, "--\t---------\t--\t----\t------\t-----")

	for _, r := range records {
		mode := "live"
		if r.Noop {
			mode = "noop"
		}
		result := "ok"
		if r.Failed() {
			result = r.ErrorKind
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Op, mode, result, strings.Join(r.Paths, " "))
	}
	_ = tw.Flush()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
