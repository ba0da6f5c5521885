package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/cabloomi/inventory/internal/api/client"
)

func appraiseCmd() *cobra.Command {
	var (
		imei      string
		condition string
		attrsJSON string
		attrsFile string
	)

	cmd := &cobra.Command{
		Use:   "appraise [description]",
		Short: "Appraise a device against the price catalog",
		Long: "Sends an appraisal request to the API server. The device can be\n" +
			"identified by a free-form description, an IMEI resolved through the\n" +
			"lookup provider, or a raw attribute object.",
		Example: `  inventoryd appraise "IPHONE 15 PRO 256GB DESERT-USA"
  inventoryd appraise --imei 356728115997001 --condition used
  inventoryd appraise --attributes '{"Model":"iPhone 14","Carrier":"Verizon"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := apiclient.AppraiseRequest{
				IMEI:      imei,
				Condition: condition,
			}
			if len(args) == 1 {
				req.Description = args[0]
			}

			attrs, err := readAttributes(attrsJSON, attrsFile)
			if err != nil {
				return err
			}
			req.Attributes = attrs

			if req.Description == "" && req.IMEI == "" && len(req.Attributes) == 0 {
				return fmt.Errorf("a description, --imei, or --attributes is required")
			}

			appraisal, err := newClient().Appraise(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(appraisal)
			}
			return printAppraisalDetail(appraisal)
		},
	}

	cmd.Flags().StringVar(&imei, "imei", "", "device IMEI to resolve through the lookup provider")
	cmd.Flags().StringVar(&condition, "condition", "", "device condition (new, used)")
	cmd.Flags().StringVar(&attrsJSON, "attributes", "", "raw attribute object as JSON")
	cmd.Flags().StringVar(&attrsFile, "attributes-file", "", "file containing the raw attribute object")

	return cmd
}

func readAttributes(attrsJSON, attrsFile string) (json.RawMessage, error) {
	if attrsJSON != "" && attrsFile != "" {
		return nil, fmt.Errorf("--attributes and --attributes-file are mutually exclusive")
	}
	if attrsJSON != "" {
		return json.RawMessage(attrsJSON), nil
	}
	if attrsFile != "" {
		data, err := os.ReadFile(attrsFile)
		if err != nil {
			return nil, fmt.Errorf("reading attributes file: %w", err)
		}
		return json.RawMessage(data), nil
	}
	return nil, nil
}
