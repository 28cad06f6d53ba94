package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/logrusorgru/aurora"

	"signature-explorer/models"
	"signature-explorer/signature"
	"signature-explorer/web"
)

func (o *rootOptions) aurora() aurora.Aurora {
	return aurora.NewAurora(!o.noColor && os.Getenv("NO_COLOR") == "")
}

func printResults(w io.Writer, au aurora.Aurora, results []models.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HASH\tTYPE\tNAME")
	for _, r := range results {
		name := au.Green(r.Name).String()
		if r.Filtered {
			name = au.Gray(12, r.Name+" (filtered)").String()
		} else if r.HasVerifiedContract {
			name += " " + au.Cyan("✓").String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.HexSignature, r.Type, name)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d results\n", len(results))
}

func printStats(w io.Writer, stats *models.Stats) {
	fmt.Fprintf(w, "%s functions\n", web.FormatNumber(stats.Count.Function))
	fmt.Fprintf(w, "%s events\n", web.FormatNumber(stats.Count.Event))
	fmt.Fprintf(w, "%s errors\n", web.FormatNumber(stats.Count.Error))
	fmt.Fprintf(w, "%s total\n", web.FormatNumber(stats.Count.Total))
	if refreshed := stats.Metadata.Refreshed(); refreshed != "" {
		fmt.Fprintf(w, "refreshed at %s\n", refreshed)
	}
}

func printImport(w io.Writer, au aurora.Aurora, result *models.ImportResult) {
	// Status is coloured, so it stays in the last cell where tabwriter does not
	// measure it.
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range signature.Rows(*result) {
		var status string
		switch row.Status {
		case signature.StatusImported:
			status = au.Green("imported").String()
		case signature.StatusDuplicated:
			status = au.Gray(12, "duplicated").String()
		default:
			status = au.Red("invalid").String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Type, row.Hash, row.Signature, status)
	}
	tw.Flush()
	fmt.Fprintln(w, signature.Summarize(*result).Message())
}
