package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/cabloomi/inventory/internal/api/client"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printAppraisalDetail(a *apiclient.Appraisal) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Description:\t%s\n", a.Description)
	tw.writef("Brand:\t%s\n", a.Brand)
	tw.writef("Condition:\t%s\n", a.Condition)
	if a.Generation > 0 {
		tw.writef("Generation:\t%d\n", a.Generation)
	}
	if a.Tier != "" {
		tw.writef("Tier:\t%s\n", a.Tier)
	}
	if a.StorageGB > 0 {
		tw.writef("Storage:\t%dGB\n", a.StorageGB)
	}
	if a.Color != "" {
		tw.writef("Color:\t%s\n", a.Color)
	}
	if a.Carrier != "" {
		tw.writef("Carrier:\t%s\n", a.Carrier)
	}
	tw.writef("Unlocked:\t%v\n", a.Unlocked)
	if a.ICloudLockOn {
		tw.writef("iCloud Lock:\tON\n")
	}
	tw.writef("Matched:\t%v\n", a.Matched)
	if a.Matched {
		tw.writef("Device:\t%s\n", a.DeviceLabel)
		tw.writef("Category:\t%s\n", a.Category)
		tw.writef("Confidence:\t%.3f\n", a.Confidence)
		tw.writef("Purchase Price:\t%s\n", formatCents(a.PurchasePriceCents))
		if a.BasePriceCents > 0 {
			tw.writef("Base Price:\t%s\n", formatCents(a.BasePriceCents))
		}
	}
	return tw.finish()
}

func printBatchTable(results []apiclient.BatchResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("#\tDEVICE\tCONFIDENCE\tPRICE\tERROR\n")
	for i := range results {
		r := &results[i]
		if r.Error != "" {
			tw.writef("%d\t-\t-\t-\t%s\n", i+1, truncate(r.Error, 60))
			continue
		}

		device := r.Appraisal.DeviceLabel
		if device == "" {
			device = truncate(r.Appraisal.Description, 40)
		}
		price := "-"
		if r.Appraisal.Matched {
			price = formatCents(r.Appraisal.PurchasePriceCents)
		}
		tw.writef("%d\t%s\t%.3f\t%s\t\n",
			i+1,
			device,
			r.Appraisal.Confidence,
			price,
		)
	}
	return tw.finish()
}

func printCatalogStatus(s *apiclient.CatalogStatus) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Rows:\t%d\n", s.Rows)
	tw.writef("Refreshed:\t%s\n", s.RefreshedAt.Format("2006-01-02 15:04:05 MST"))
	return tw.finish()
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
