package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int64
	}{
		{"$12.50", 1250},
		{"12.50", 1250},
		{"150.00", 15000},
		{"$1,299.99", 129999},
		{"$150", 15000},
		{"1250", 1250},
		{"10000", 10000},
		{"10001", 10001},
		{"129999", 129999},
		{"12500.50", 12501},
		{"0", 0},
		{"", 0},
		{"   ", 0},
		{"N/A", 0},
		{"call for price", 0},
		{"-45", 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ToCents(tt.raw))
		})
	}
}
