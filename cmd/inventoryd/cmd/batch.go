package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/cabloomi/inventory/internal/api/client"
)

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Appraise a batch of devices from a JSON file",
		Long: "Reads a JSON array of appraisal requests from a file and submits\n" +
			"them as one batch. Results come back in input order, one per item.",
		Example: `  inventoryd batch devices.json
  inventoryd batch devices.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading batch file: %w", err)
			}

			var reqs []apiclient.AppraiseRequest
			if err := json.Unmarshal(data, &reqs); err != nil {
				return fmt.Errorf("parsing batch file: %w", err)
			}
			if len(reqs) == 0 {
				return fmt.Errorf("batch file contains no requests")
			}

			results, err := newClient().AppraiseBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(results)
			}
			return printBatchTable(results)
		},
	}
}
