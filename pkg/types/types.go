// Package domain defines the core business types for the device appraisal
// engine: price catalog rows, extracted device signatures, carrier/lock
// state, and match results.
package domain

import "time"

// Brand groups devices into the product lines the matcher understands.
type Brand string

// Brand constants.
const (
	BrandApple   Brand = "apple"
	BrandSamsung Brand = "samsung"
	BrandOther   Brand = "other"
)

// Condition is the physical condition claimed for the device being appraised.
type Condition string

// Condition constants.
const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Tier is the product variant within a generation.
type Tier string

// Tier constants. TierUnknown means no tier could be derived from the text.
const (
	TierUnknown Tier = ""
	TierBase    Tier = "base"
	TierPlus    Tier = "plus"
	TierPro     Tier = "pro"
	TierProMax  Tier = "promax"
	TierE       Tier = "e"
)

// CatalogRow is one priced device entry from the buyback price catalog.
// Rows are immutable once parsed. A price of 0 means "unknown", never an
// error; callers must treat 0 as missing data.
type CatalogRow struct {
	Category           string `json:"category"`
	DeviceLabel        string `json:"device_label"`
	PurchasePriceCents int64  `json:"purchase_price_cents"`
	BasePriceCents     int64  `json:"base_price_cents"`
}

// Catalog is an immutable snapshot of the parsed price catalog. It is
// rebuilt wholesale on each refresh; the matching engine never mutates a
// Catalog it was given.
type Catalog struct {
	Rows        []CatalogRow `json:"rows"`
	RefreshedAt time.Time    `json:"refreshed_at"`
}

// DeviceSignature is the structured tuple extracted from a free-text device
// description. Zero values mean "unknown": Generation 0, StorageGB 0,
// Color "", Tier TierUnknown.
type DeviceSignature struct {
	Generation int    `json:"generation,omitempty"`
	Tier       Tier   `json:"tier,omitempty"`
	StorageGB  int    `json:"storage_gb,omitempty"`
	Color      string `json:"color,omitempty"`
}

// CarrierInfo is the carrier and lock state inferred from a lookup payload.
// Carrier "" means no carrier could be inferred; the default in that case
// is a caller policy, not an engine guarantee.
type CarrierInfo struct {
	Carrier      string `json:"carrier,omitempty"`
	Unlocked     bool   `json:"unlocked"`
	ICloudLockOn bool   `json:"icloud_lock_on"`
}

// MatchResult is the outcome of matching one device query against the
// catalog. Row is nil and Confidence is 0 when no plausible match exists;
// that is a normal result, not an error. Never mutated after creation.
type MatchResult struct {
	Row                *CatalogRow `json:"row,omitempty"`
	Confidence         float64     `json:"confidence"`
	PurchasePriceCents int64       `json:"purchase_price_cents,omitempty"`
	BasePriceCents     int64       `json:"base_price_cents,omitempty"`
}
