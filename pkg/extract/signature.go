// Package extract derives structured device signatures, brand, and
// carrier/lock state from the noisy free-text payloads returned by
// phone-identity lookup providers.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// Generation bounds reflect the catalog's current product line. They are
// configurable because the line grows; see WithGenerationBounds.
const (
	defaultMinGeneration = 6
	defaultMaxGeneration = 19
)

var (
	// regionSuffixRegex matches a trailing hyphenated 2-3 letter region
	// code, e.g. "IPHONE 16 PRO 256GB-USA".
	regionSuffixRegex = regexp.MustCompile(`-[A-Z]{2,3}$`)

	// storageRegex captures storage sizes like "256GB" or "256 GB".
	storageRegex = regexp.MustCompile(`(?i)(\d{2,4})\s*GB`)
)

// tierRules maps description patterns to tiers in priority order. Order is
// significant: "pro max" is a superset pattern of "pro", so it must be
// tried first. The first matching rule wins; no match means TierBase.
var tierRules = []struct {
	pattern *regexp.Regexp
	tier    domain.Tier
}{
	{regexp.MustCompile(`\bPRO\s*MAX\b`), domain.TierProMax},
	{regexp.MustCompile(`\bPRO\b`), domain.TierPro},
	{regexp.MustCompile(`\bPLUS\b`), domain.TierPlus},
	{regexp.MustCompile(`\b\d{1,2}E\b`), domain.TierE},
}

// colorVocab is the closed list of marketing color names, canonical form
// first-match-wins. Multi-word names come before their single-word
// components so "Sierra Blue" is not reported as "Blue".
var colorVocab = []string{
	"Desert Titanium", "Natural Titanium", "Black Titanium", "White Titanium",
	"Blue Titanium", "Sierra Blue", "Pacific Blue", "Alpine Green",
	"Deep Purple", "Space Gray", "Space Grey", "Space Black", "Jet Black",
	"Midnight Green", "Rose Gold", "Product Red",
	"Midnight", "Starlight", "Graphite", "Titanium", "Desert", "Natural",
	"Silver", "Gold", "Black", "White", "Blue", "Green", "Red", "Yellow",
	"Pink", "Purple", "Coral", "Teal", "Ultramarine",
}

var colorRules = buildColorRules()

func buildColorRules() []struct {
	pattern *regexp.Regexp
	name    string
} {
	rules := make([]struct {
		pattern *regexp.Regexp
		name    string
	}, 0, len(colorVocab))
	for _, name := range colorVocab {
		rules = append(rules, struct {
			pattern *regexp.Regexp
			name    string
		}{
			pattern: regexp.MustCompile(`(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(name), " ", `\s+`) + `\b`),
			name:    name,
		})
	}
	return rules
}

// SignatureExtractor turns free-text device descriptions into structured
// signatures. The zero value is not usable; construct with NewSignatureExtractor.
type SignatureExtractor struct {
	minGeneration int
	maxGeneration int
}

// SignatureOption configures the SignatureExtractor.
type SignatureOption func(*SignatureExtractor)

// WithGenerationBounds overrides the accepted generation range.
func WithGenerationBounds(minGen, maxGen int) SignatureOption {
	return func(e *SignatureExtractor) {
		e.minGeneration = minGen
		e.maxGeneration = maxGen
	}
}

// NewSignatureExtractor creates a SignatureExtractor with the default
// generation bounds.
func NewSignatureExtractor(opts ...SignatureOption) *SignatureExtractor {
	e := &SignatureExtractor{
		minGeneration: defaultMinGeneration,
		maxGeneration: defaultMaxGeneration,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract derives a DeviceSignature from a free-text description. Every
// field degrades independently to its unknown value; Extract never fails.
func (e *SignatureExtractor) Extract(description string) domain.DeviceSignature {
	cleaned := cleanDescription(description)

	sig := domain.DeviceSignature{
		StorageGB:  extractStorage(cleaned),
		Generation: e.extractGeneration(cleaned),
		Color:      extractColor(cleaned),
	}
	if cleaned != "" {
		sig.Tier = extractTier(cleaned)
	}
	return sig
}

// cleanDescription upper-cases, replaces anything outside [A-Z0-9 -] with a
// space, collapses whitespace, and strips a trailing region code.
func cleanDescription(s string) string {
	upper := strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	cleaned := strings.Join(strings.Fields(b.String()), " ")
	return regionSuffixRegex.ReplaceAllString(cleaned, "")
}

func extractStorage(cleaned string) int {
	m := storageRegex.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}
	gb, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return gb
}

func extractTier(cleaned string) domain.Tier {
	for _, rule := range tierRules {
		if rule.pattern.MatchString(cleaned) {
			return rule.tier
		}
	}
	return domain.TierBase
}

// extractGeneration returns the first pure-integer token within the
// configured bounds. Tokens like "256GB" are not integer tokens and are
// never considered.
func (e *SignatureExtractor) extractGeneration(cleaned string) int {
	for _, tok := range strings.Fields(strings.ReplaceAll(cleaned, "-", " ")) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if n >= e.minGeneration && n <= e.maxGeneration {
			return n
		}
	}
	return 0
}

func extractColor(cleaned string) string {
	for _, rule := range colorRules {
		if rule.pattern.MatchString(cleaned) {
			return rule.name
		}
	}
	return ""
}
