package extract

import (
	"strings"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// brandRules maps description substrings to brands, tried in order.
var brandRules = []struct {
	brand    domain.Brand
	patterns []string
}{
	{domain.BrandApple, []string{"iphone", "apple", "ipad"}},
	{domain.BrandSamsung, []string{"samsung", "galaxy"}},
}

// InferBrand determines the product line from a device description by
// substring check. Unrecognized descriptions are BrandOther.
func InferBrand(description string) domain.Brand {
	desc := strings.ToLower(description)
	for _, rule := range brandRules {
		for _, pat := range rule.patterns {
			if strings.Contains(desc, pat) {
				return rule.brand
			}
		}
	}
	return domain.BrandOther
}
