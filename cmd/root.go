package cmd

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"signature-explorer/config"
	"signature-explorer/openchain"
)

type rootOptions struct {
	envFile string
	apiURL  string
	jsonOut bool
	noColor bool
	cfg     config.Config
}

// NewRootCmd builds the command tree. Running it without a subcommand serves the web UI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "signature-explorer",
		Short: "Search and import Ethereum function, error and event signatures",
		Long: `signature-explorer is a web UI and a small JSON API in front of the openchain
signature database. It can also be used from the command line:

	signature-explorer search transfer
	signature-explorer lookup 0xa9059cbb
	signature-explorer import abi.json
	signature-explorer stats`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if opts.envFile != "" {
				files = append(files, opts.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if opts.apiURL != "" {
				cfg.APIURL = opts.apiURL
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, "")
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "env file to load (default .env when present)")
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "signature database base URL (overrides OPENCHAIN_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print raw JSON responses")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newLookupCmd(opts),
		newStatsCmd(opts),
		newImportCmd(opts),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) client() *openchain.Client {
	return openchain.NewClient(o.cfg.APIURL, &http.Client{Timeout: o.cfg.UpstreamTimeout}, nil)
}
