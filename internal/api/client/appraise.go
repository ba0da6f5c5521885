package client

import (
	"context"
	"encoding/json"
)

// AppraiseRequest mirrors the appraise endpoint request body.
type AppraiseRequest struct {
	Description string          `json:"description,omitempty"`
	IMEI        string          `json:"imei,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

// Appraisal mirrors the appraise endpoint response body.
type Appraisal struct {
	Description        string  `json:"description"`
	Brand              string  `json:"brand"`
	Condition          string  `json:"condition"`
	Generation         int     `json:"generation,omitempty"`
	Tier               string  `json:"tier,omitempty"`
	StorageGB          int     `json:"storage_gb,omitempty"`
	Color              string  `json:"color,omitempty"`
	Carrier            string  `json:"carrier,omitempty"`
	Unlocked           bool    `json:"unlocked"`
	ICloudLockOn       bool    `json:"icloud_lock_on"`
	Matched            bool    `json:"matched"`
	DeviceLabel        string  `json:"device_label,omitempty"`
	Category           string  `json:"category,omitempty"`
	Confidence         float64 `json:"confidence"`
	PurchasePriceCents int64   `json:"purchase_price_cents"`
	BasePriceCents     int64   `json:"base_price_cents"`
}

// BatchResult pairs one batch item with its result or error.
type BatchResult struct {
	Appraisal *Appraisal `json:"appraisal,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Appraise evaluates one device against the catalog.
func (c *Client) Appraise(ctx context.Context, req AppraiseRequest) (*Appraisal, error) {
	var out Appraisal
	if err := c.post(ctx, "/api/v1/appraise", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AppraiseBatch evaluates a batch of devices, one result per item in input order.
func (c *Client) AppraiseBatch(ctx context.Context, reqs []AppraiseRequest) ([]BatchResult, error) {
	body := map[string]any{"items": reqs}

	var out struct {
		Results []BatchResult `json:"results"`
	}
	if err := c.post(ctx, "/api/v1/appraise/batch", body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
