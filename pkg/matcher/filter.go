// Package matcher narrows the price catalog to plausible candidate rows and
// scores them against a device query in two passes.
package matcher

import (
	"strings"

	"github.com/cabloomi/inventory/pkg/textutil"
	domain "github.com/cabloomi/inventory/pkg/types"
)

// excludedCategoryTerms mark rows from unrelated product classes. Rows whose
// category contains any of these are dropped from every candidate group,
// unconditionally.
var excludedCategoryTerms = []string{
	"watch",
	"buds",
	"earbud",
	"airpod",
	"accessor",
}

// pattern is a set of substrings that must all appear in a normalized
// category for the pattern to match.
type pattern []string

// group is a set of alternative patterns; a row belongs to the group when
// any one pattern matches its category.
type group []pattern

// filterKey selects the priority table for one brand/condition/lock
// combination.
type filterKey struct {
	brand    domain.Brand
	cond     domain.Condition
	unlocked bool
}

// priorityTable holds the hand-ordered candidate groups per combination.
// The filter returns the first non-empty group; the order within each list
// is deliberate and must not be re-sorted.
var priorityTable = map[filterKey][]group{
	{domain.BrandApple, domain.ConditionNew, true}: {
		{pattern{"iphone", "new", "unlocked"}},
		{pattern{"new", "unlocked"}},
		{pattern{"iphone", "new"}},
		{pattern{"new"}},
	},
	{domain.BrandApple, domain.ConditionNew, false}: {
		{pattern{"iphone", "new", "locked"}},
		{pattern{"iphone", "new"}},
		{pattern{"new"}},
	},
	{domain.BrandApple, domain.ConditionUsed, true}: {
		{pattern{"iphone", "used", "unlocked"}},
		{pattern{"used", "unlocked"}},
		{pattern{"iphone", "used"}},
		{pattern{"used"}},
	},
	{domain.BrandApple, domain.ConditionUsed, false}: {
		{pattern{"iphone", "used", "locked"}},
		{pattern{"iphone", "used"}},
		{pattern{"used"}},
	},
	{domain.BrandSamsung, domain.ConditionNew, true}: {
		{pattern{"samsung", "new", "unlocked"}},
		{pattern{"samsung", "new"}},
		{pattern{"samsung"}},
	},
	{domain.BrandSamsung, domain.ConditionNew, false}: {
		{pattern{"samsung", "new", "locked"}},
		{pattern{"samsung", "new"}},
		{pattern{"samsung"}},
	},
	{domain.BrandSamsung, domain.ConditionUsed, true}: {
		{pattern{"samsung", "used", "unlocked"}},
		{pattern{"samsung", "used"}},
		{pattern{"samsung"}},
	},
	{domain.BrandSamsung, domain.ConditionUsed, false}: {
		{pattern{"samsung", "used", "locked"}},
		{pattern{"samsung", "used"}},
		{pattern{"samsung"}},
	},
}

// genericGroups is the fallback table for brands with no dedicated entry.
func genericGroups(cond domain.Condition) []group {
	return []group{
		{pattern{string(cond)}},
	}
}

// Candidates reduces the catalog to the rows plausible for the given brand,
// condition, and lock state, in catalog order. If every priority group is
// empty it returns all non-excluded rows as a last resort; the matcher may
// still find no usable match among them.
func Candidates(
	cat domain.Catalog,
	brand domain.Brand,
	cond domain.Condition,
	unlocked bool,
) []domain.CatalogRow {
	groups, ok := priorityTable[filterKey{brand, cond, unlocked}]
	if !ok {
		groups = genericGroups(cond)
	}

	eligible := make([]domain.CatalogRow, 0, len(cat.Rows))
	categories := make([]string, 0, len(cat.Rows))
	for _, row := range cat.Rows {
		category := textutil.Normalize(row.Category)
		if isExcludedCategory(category) {
			continue
		}
		eligible = append(eligible, row)
		categories = append(categories, category)
	}

	for _, g := range groups {
		var matched []domain.CatalogRow
		for i, row := range eligible {
			if g.matches(categories[i]) {
				matched = append(matched, row)
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}

	return eligible
}

func (g group) matches(category string) bool {
	for _, p := range g {
		if p.matches(category) {
			return true
		}
	}
	return false
}

func (p pattern) matches(category string) bool {
	for _, term := range p {
		if !termMatches(category, term) {
			return false
		}
	}
	return true
}

// termMatches reports whether the normalized category contains term. The
// term "locked" is a substring of "unlocked", so it only counts after any
// "unlocked" occurrences are removed from the category.
func termMatches(category, term string) bool {
	if term == "locked" {
		category = strings.ReplaceAll(category, "unlocked", "")
	}
	return strings.Contains(category, term)
}

func isExcludedCategory(category string) bool {
	for _, term := range excludedCategoryTerms {
		if strings.Contains(category, term) {
			return true
		}
	}
	return false
}
