package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"signature-explorer/openchain"
	"signature-explorer/signature"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name or hash>",
		Short: "Search by name, or look up a hash, the same way the search page does",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := signature.Classify(args[0])
			switch q.Kind {
			case signature.KindInvalid:
				return fmt.Errorf("%s", q.Reason)
			case signature.KindHash:
				return runLookup(cmd, opts, openchain.LookupParams{Function: q.Hex, Event: q.Hex})
			}

			client := opts.client()
			if opts.jsonOut {
				raw, err := client.SearchRaw(cmd.Context(), q.Term)
				return printRaw(cmd, raw, err)
			}
			result, err := client.Search(cmd.Context(), q.Term)
			if err != nil {
				return err
			}
			printResults(cmd.OutOrStdout(), opts.aurora(), result.Flatten())
			return nil
		},
	}
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var unfiltered bool
	cmd := &cobra.Command{
		Use:   "lookup <hash>",
		Short: "Look up a 4-byte selector or a 32-byte topic hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			q := signature.Classify(input)
			if q.IsInvalid() {
				return fmt.Errorf("%s", q.Reason)
			}
			if !q.IsHash() {
				return fmt.Errorf("%q is not a hash, use the search command for names", input)
			}
			params := openchain.LookupParams{Function: q.Hex, Event: q.Hex}
			if unfiltered {
				filter := false
				params.Filter = &filter
			}
			return runLookup(cmd, opts, params)
		},
	}
	cmd.Flags().BoolVar(&unfiltered, "unfiltered", false, "include signatures flagged as spam")
	return cmd
}

func runLookup(cmd *cobra.Command, opts *rootOptions, params openchain.LookupParams) error {
	client := opts.client()
	if opts.jsonOut {
		raw, err := client.LookupRaw(cmd.Context(), params)
		return printRaw(cmd, raw, err)
	}
	result, err := client.Lookup(cmd.Context(), params)
	if err != nil {
		return err
	}
	printResults(cmd.OutOrStdout(), opts.aurora(), result.Flatten())
	return nil
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many signatures the database holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			if opts.jsonOut {
				raw, err := client.StatsRaw(cmd.Context())
				return printRaw(cmd, raw, err)
			}
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func printRaw(cmd *cobra.Command, raw *openchain.RawResponse, err error) error {
	if err != nil {
		return err
	}
	if !raw.OK() {
		return &openchain.StatusError{Endpoint: cmd.Name(), StatusCode: raw.StatusCode}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw.Body))
	return err
}
