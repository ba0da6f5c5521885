package matcher

import (
	"fmt"
	"math"
	"strings"

	"github.com/cabloomi/inventory/pkg/extract"
	"github.com/cabloomi/inventory/pkg/textutil"
	domain "github.com/cabloomi/inventory/pkg/types"
)

// Strict-pass weights: a gated candidate starts at 0.5 and earns boosts for
// storage equality and label similarity.
const (
	strictBaseScore    = 0.5
	strictStorageBoost = 0.35
	strictNameWeight   = 0.15
)

// Relaxed-pass weights, used only when the strict pass found nothing.
const (
	relaxedNameWeight   = 0.3
	relaxedTierBoost    = 0.2
	relaxedStorageBoost = 0.2
)

// Plain-pass weights for product lines without a usable signature.
const (
	plainNameWeight   = 0.8
	plainStorageBoost = 0.15
	plainCarrierBoost = 0.05
)

// Query is one device-to-catalog matching request.
type Query struct {
	Description string
	Signature   domain.DeviceSignature
	Brand       domain.Brand
	Condition   domain.Condition
	Carrier     domain.CarrierInfo
}

// Matcher scores candidate catalog rows against a device query. It holds a
// signature extractor so candidate labels are parsed with the same rules as
// the query description.
type Matcher struct {
	extractor *extract.SignatureExtractor
}

// New creates a Matcher. A nil extractor gets the default bounds.
func New(ex *extract.SignatureExtractor) *Matcher {
	if ex == nil {
		ex = extract.NewSignatureExtractor()
	}
	return &Matcher{extractor: ex}
}

// Match finds the best catalog row for the query among the candidates.
//
// For signature product lines (Apple) it runs a strict pass gated on
// generation and tier equality, then a relaxed pass gated on generation
// only. Other product lines are scored purely on label similarity with
// storage and carrier boosts. Ties keep the first-seen row (stable
// first-wins, not "best"); catalog reordering can change which of two
// equally-scored rows is returned.
//
// Match never fails: no eligible candidate yields a nil row with
// confidence 0.
func (m *Matcher) Match(q Query, candidates []domain.CatalogRow) domain.MatchResult {
	if len(candidates) == 0 {
		return domain.MatchResult{}
	}

	var best *domain.CatalogRow
	var bestScore float64

	if q.Brand == domain.BrandApple {
		best, bestScore = m.strictPass(q, candidates)
		if best == nil {
			best, bestScore = m.relaxedPass(q, candidates)
		}
	} else {
		best, bestScore = m.plainPass(q, candidates)
	}

	score := roundConfidence(bestScore)
	if best == nil || score == 0 {
		return domain.MatchResult{}
	}

	row := *best
	return domain.MatchResult{
		Row:                &row,
		Confidence:         score,
		PurchasePriceCents: row.PurchasePriceCents,
		BasePriceCents:     row.BasePriceCents,
	}
}

// strictPass admits only candidates whose generation and tier equal the
// query's. An unknown generation or tier on either side does not block.
func (m *Matcher) strictPass(
	q Query,
	candidates []domain.CatalogRow,
) (*domain.CatalogRow, float64) {
	var best *domain.CatalogRow
	var bestScore float64

	for i := range candidates {
		row := &candidates[i]
		sig := m.extractor.Extract(row.DeviceLabel)

		if !generationsCompatible(q.Signature.Generation, sig.Generation) {
			continue
		}
		if !tiersCompatible(q.Signature.Tier, sig.Tier) {
			continue
		}

		score := strictBaseScore +
			strictStorageBoost*boolWeight(storageEqual(q.Signature.StorageGB, sig.StorageGB)) +
			strictNameWeight*nameSimilarity(q.Description, row.DeviceLabel)

		if score > bestScore {
			best, bestScore = row, score
		}
	}
	return best, bestScore
}

// relaxedPass requires only generation equality when both sides know it.
func (m *Matcher) relaxedPass(
	q Query,
	candidates []domain.CatalogRow,
) (*domain.CatalogRow, float64) {
	var best *domain.CatalogRow
	var bestScore float64

	for i := range candidates {
		row := &candidates[i]
		sig := m.extractor.Extract(row.DeviceLabel)

		if !generationsCompatible(q.Signature.Generation, sig.Generation) {
			continue
		}

		score := relaxedNameWeight*nameSimilarity(q.Description, row.DeviceLabel) +
			relaxedTierBoost*boolWeight(q.Signature.Tier != domain.TierUnknown && q.Signature.Tier == sig.Tier) +
			relaxedStorageBoost*boolWeight(storageEqual(q.Signature.StorageGB, sig.StorageGB))

		if score > bestScore {
			best, bestScore = row, score
		}
	}
	return best, bestScore
}

// plainPass skips signature gating entirely and scores on label similarity
// plus storage/carrier hints.
func (m *Matcher) plainPass(
	q Query,
	candidates []domain.CatalogRow,
) (*domain.CatalogRow, float64) {
	var best *domain.CatalogRow
	var bestScore float64

	for i := range candidates {
		row := &candidates[i]

		score := plainNameWeight*nameSimilarity(q.Description, row.DeviceLabel) +
			plainStorageBoost*boolWeight(labelHasStorage(row.DeviceLabel, q.Signature.StorageGB)) +
			plainCarrierBoost*boolWeight(labelHasCarrier(row.DeviceLabel, q.Carrier.Carrier))

		if score > bestScore {
			best, bestScore = row, score
		}
	}
	return best, bestScore
}

// nameSimilarity compares normalized labels; one containing the other is a
// perfect 1.0, otherwise edit-distance similarity.
func nameSimilarity(a, b string) float64 {
	na := textutil.NormalizeForSearch(a)
	nb := textutil.NormalizeForSearch(b)
	if na == "" || nb == "" {
		return textutil.Similarity(na, nb)
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 1
	}
	return textutil.Similarity(na, nb)
}

// generationsCompatible reports whether two generations can match: equal,
// or unknown (0) on either side.
func generationsCompatible(a, b int) bool {
	return a == 0 || b == 0 || a == b
}

func tiersCompatible(a, b domain.Tier) bool {
	return a == domain.TierUnknown || b == domain.TierUnknown || a == b
}

func storageEqual(a, b int) bool {
	return a != 0 && a == b
}

// labelHasStorage reports whether the normalized label mentions the query's
// storage size.
func labelHasStorage(label string, storageGB int) bool {
	if storageGB == 0 {
		return false
	}
	norm := textutil.NormalizeForSearch(label)
	return strings.Contains(norm, fmt.Sprintf("%dgb", storageGB)) ||
		strings.Contains(norm, fmt.Sprintf("%d gb", storageGB))
}

func labelHasCarrier(label, carrier string) bool {
	if carrier == "" {
		return false
	}
	return strings.Contains(
		textutil.NormalizeForSearch(label),
		textutil.NormalizeForSearch(carrier),
	)
}

func boolWeight(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// roundConfidence clamps to [0,1] and rounds to three decimal places.
func roundConfidence(s float64) float64 {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return math.Round(s*1000) / 1000
}
