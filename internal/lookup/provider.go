// Package lookup provides the device lookup provider client. Given a
// device identifier it returns the provider's raw attribute payload,
// rate limited behind a token bucket and a rolling daily quota.
package lookup

import (
	"context"

	"github.com/cabloomi/inventory/pkg/extract"
)

// Provider resolves a device identifier (IMEI or serial) to the raw
// attribute payload reported by the upstream lookup service.
type Provider interface {
	Lookup(ctx context.Context, imei string) (extract.Payload, error)
}
