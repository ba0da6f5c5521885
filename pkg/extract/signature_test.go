package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/cabloomi/inventory/pkg/types"
)

func TestSignatureExtractor_Extract(t *testing.T) {
	t.Parallel()

	ex := NewSignatureExtractor()

	tests := []struct {
		name string
		in   string
		want domain.DeviceSignature
	}{
		{
			name: "full vendor string with region code",
			in:   "IPHONE 16 PRO DESERT 256GB-USA",
			want: domain.DeviceSignature{Generation: 16, Tier: domain.TierPro, StorageGB: 256, Color: "Desert"},
		},
		{
			name: "pro max beats pro",
			in:   "iPhone 15 Pro Max 512GB Natural Titanium",
			want: domain.DeviceSignature{Generation: 15, Tier: domain.TierProMax, StorageGB: 512, Color: "Natural Titanium"},
		},
		{
			name: "plus",
			in:   "IPHONE 14 PLUS 128GB MIDNIGHT",
			want: domain.DeviceSignature{Generation: 14, Tier: domain.TierPlus, StorageGB: 128, Color: "Midnight"},
		},
		{
			name: "model letter e",
			in:   "IPHONE 16E 128GB WHITE",
			want: domain.DeviceSignature{Tier: domain.TierE, StorageGB: 128, Color: "White"},
		},
		{
			name: "base tier by default",
			in:   "iPhone 13 128GB Blue",
			want: domain.DeviceSignature{Generation: 13, Tier: domain.TierBase, StorageGB: 128, Color: "Blue"},
		},
		{
			name: "hyphen separated vendor text",
			in:   "APPLE IPHONE-12-PRO-64GB-GRAPHITE-LL",
			want: domain.DeviceSignature{Generation: 12, Tier: domain.TierPro, StorageGB: 64, Color: "Graphite"},
		},
		{
			name: "storage out of token does not set generation",
			in:   "GALAXY TAB 256GB",
			want: domain.DeviceSignature{Tier: domain.TierBase, StorageGB: 256},
		},
		{
			name: "no signal at all",
			in:   "UNKNOWN DEVICE",
			want: domain.DeviceSignature{Tier: domain.TierBase},
		},
		{
			name: "empty input",
			in:   "",
			want: domain.DeviceSignature{},
		},
		{
			name: "generation outside bounds ignored",
			in:   "IPHONE 4 8GB BLACK",
			want: domain.DeviceSignature{Tier: domain.TierBase, Color: "Black"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ex.Extract(tt.in))
		})
	}
}

func TestSignatureExtractor_GenerationBounds(t *testing.T) {
	t.Parallel()

	ex := NewSignatureExtractor(WithGenerationBounds(20, 25))

	sig := ex.Extract("IPHONE 22 PRO 256GB")
	assert.Equal(t, 22, sig.Generation)

	sig = ex.Extract("IPHONE 16 PRO 256GB")
	assert.Equal(t, 0, sig.Generation, "16 is below the configured lower bound")
}

func TestSignatureExtractor_TierPriority(t *testing.T) {
	t.Parallel()

	ex := NewSignatureExtractor()

	// "pro max" is a superset pattern of "pro"; the priority order must
	// resolve it to promax, never pro.
	assert.Equal(t, domain.TierProMax, ex.Extract("IPHONE 16 PRO MAX 1TB").Tier)
	assert.Equal(t, domain.TierPro, ex.Extract("IPHONE 16 PRO 1TB").Tier)
}

func TestSignatureExtractor_ColorFirstMatch(t *testing.T) {
	t.Parallel()

	ex := NewSignatureExtractor()

	tests := []struct {
		in   string
		want string
	}{
		{"IPHONE 13 PRO SIERRA BLUE 256GB", "Sierra Blue"},
		{"IPHONE 16 PRO DESERT TITANIUM", "Desert Titanium"},
		{"IPHONE 11 SPACE GRAY", "Space Gray"},
		{"IPHONE 7 ROSE GOLD 32GB", "Rose Gold"},
		{"IPHONE 12 NO COLOR HERE", ""},
	}
	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, ex.Extract(tt.in).Color, "input %q", tt.in)
	}
}

func TestInferBrand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.Brand
	}{
		{"IPHONE 16 PRO 256GB", domain.BrandApple},
		{"Apple iPad Air", domain.BrandApple},
		{"SAMSUNG GALAXY S24 ULTRA", domain.BrandSamsung},
		{"Galaxy Z Flip 5", domain.BrandSamsung},
		{"Google Pixel 8", domain.BrandOther},
		{"", domain.BrandOther},
	}
	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, InferBrand(tt.in), "input %q", tt.in)
	}
}
