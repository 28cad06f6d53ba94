package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"signature-explorer/signature"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import signatures from an ABI file or a list of text signatures",
		Long: `Reads an ABI JSON array, or one signature per line ("function ", "error " and
"event " prefixes are honoured, lines starting with // are ignored), and submits
the signatures to the database. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			data = strings.TrimSpace(data)
			if data == "" {
				return errors.New("the import data is empty, please provide some data")
			}

			req := signature.BuildImportRequest(data)
			if dryRun {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(req)
			}

			result, err := opts.client().Import(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			if opts.jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printImport(cmd.OutOrStdout(), opts.aurora(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the normalized request without submitting it")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
