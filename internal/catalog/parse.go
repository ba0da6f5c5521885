// Package catalog parses the delimited buyback price catalog into typed
// rows and fetches the raw catalog text from its upstream source.
package catalog

import (
	"strings"
	"time"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// Recognized header names, matched case-insensitively after trimming.
// The price column accepts either decimal-dollar or integer-cent naming.
var (
	categoryColumns = []string{"category", "sheet"}
	labelColumns    = []string{"device", "device_label", "label", "model", "name"}
	priceColumns    = []string{"price", "price_cents"}
	purchaseColumns = []string{"purchase_price_cents"}
	baseColumns     = []string{"base_price_cents"}
)

// Parse converts raw delimited catalog text into an ordered Catalog
// snapshot. Malformed rows (header length mismatch, empty device label) are
// silently dropped; Parse never fails on a single bad row. An input without
// a usable header yields an empty catalog.
func Parse(raw string) domain.Catalog {
	records := scanRecords(strings.TrimPrefix(raw, "\uFEFF"))
	if len(records) == 0 {
		return domain.Catalog{RefreshedAt: time.Now().UTC()}
	}

	header := buildHeaderIndex(records[0])
	catIdx, catOK := header.first(categoryColumns)
	labelIdx, labelOK := header.first(labelColumns)
	priceIdx, priceOK := header.first(priceColumns)
	purchaseIdx, purchaseOK := header.first(purchaseColumns)
	baseIdx, baseOK := header.first(baseColumns)

	if !labelOK {
		return domain.Catalog{RefreshedAt: time.Now().UTC()}
	}

	width := len(records[0])
	rows := make([]domain.CatalogRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != width {
			continue
		}

		label := strings.TrimSpace(rec[labelIdx])
		if label == "" {
			continue
		}

		row := domain.CatalogRow{DeviceLabel: label}
		if catOK {
			row.Category = strings.TrimSpace(rec[catIdx])
		}
		if priceOK {
			row.PurchasePriceCents = ToCents(rec[priceIdx])
		}
		if purchaseOK {
			row.PurchasePriceCents = ToCents(rec[purchaseIdx])
		}
		if baseOK {
			row.BasePriceCents = ToCents(rec[baseIdx])
		}
		rows = append(rows, row)
	}

	return domain.Catalog{Rows: rows, RefreshedAt: time.Now().UTC()}
}

// headerIndex maps lower-cased, trimmed header names to column positions.
type headerIndex map[string]int

func buildHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, exists := idx[name]; !exists {
			idx[name] = i
		}
	}
	return idx
}

func (h headerIndex) first(names []string) (int, bool) {
	for _, name := range names {
		if i, ok := h[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// scanRecords splits raw delimited text into records in a single
// left-to-right scan. A doubled quote inside a quoted field is an escaped
// literal quote; an unquoted comma ends a field; a newline ends a record
// only outside quotes. CR is dropped outside quotes so CRLF input parses
// the same as LF.
func scanRecords(raw string) [][]string {
	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
		sawAny   bool
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, fields)
		fields = nil
		sawAny = false
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(raw) && raw[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
			sawAny = true
		case c == ',':
			endField()
			sawAny = true
		case c == '\n':
			if sawAny || field.Len() > 0 || len(fields) > 0 {
				endRecord()
			}
		case c == '\r':
			// dropped outside quotes
		default:
			field.WriteByte(c)
			sawAny = true
		}
	}

	if sawAny || field.Len() > 0 || len(fields) > 0 {
		endRecord()
	}

	return records
}
