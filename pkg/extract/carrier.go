package extract

import (
	"strings"

	domain "github.com/cabloomi/inventory/pkg/types"
)

// carrierRules maps value substrings to canonical carrier names, tried in
// order. "Unlocked" is part of the vocabulary: some providers report it as
// the carrier itself.
var carrierRules = []struct {
	name     string
	patterns []string
}{
	{"Unlocked", []string{"unlocked", "factory unlock"}},
	{"AT&T", []string{"at&t", "at and t", "cingular"}},
	{"T-Mobile", []string{"t-mobile", "tmobile", "t mobile", "metro"}},
	{"Verizon", []string{"verizon", "vzw"}},
	{"Sprint", []string{"sprint", "boost"}},
	{"US Cellular", []string{"us cellular", "uscellular", "u.s. cellular"}},
	{"Cricket", []string{"cricket"}},
	{"Xfinity", []string{"xfinity", "comcast"}},
	{"Spectrum", []string{"spectrum"}},
	{"Tracfone", []string{"tracfone", "straight talk", "total wireless"}},
	{"Google Fi", []string{"google fi", "project fi"}},
	{"Mint", []string{"mint mobile"}},
}

// preferredCarrierKeys are key substrings that usually hold the carrier.
// They are scanned before falling back to every value in the payload.
var preferredCarrierKeys = []string{
	"carrier",
	"network",
	"locked carrier",
	"sold by",
	"sold to",
	"activation policy",
	"operator",
	"service provider",
}

// InferCarrier derives carrier name and lock state from a lookup payload.
//
// Unlock detection takes priority over carrier names: a key containing both
// "sim" and "lock" whose value contains "unlock" marks the device Unlocked
// even when a carrier name is also present. Carrier resolution then tries
// preferred keys in payload order, then all values. An empty Carrier means
// nothing matched; the default in that case belongs to the caller.
func InferCarrier(p Payload) domain.CarrierInfo {
	info := domain.CarrierInfo{
		Unlocked:     detectSimUnlock(p),
		ICloudLockOn: detectICloudLock(p),
	}

	info.Carrier = scanPreferredKeys(p)
	if info.Carrier == "" {
		info.Carrier = scanAllValues(p)
	}
	if info.Carrier == "Unlocked" {
		info.Unlocked = true
	}
	return info
}

func detectSimUnlock(p Payload) bool {
	for _, f := range p {
		key := strings.ToLower(f.Key)
		if strings.Contains(key, "sim") && strings.Contains(key, "lock") &&
			strings.Contains(strings.ToLower(f.Value), "unlock") {
			return true
		}
	}
	return false
}

// detectICloudLock reports whether any iCloud/FMI field says the lock is on.
func detectICloudLock(p Payload) bool {
	for _, f := range p {
		key := strings.ToLower(f.Key)
		if !strings.Contains(key, "icloud") && !strings.Contains(key, "fmi") {
			continue
		}
		val := strings.ToLower(f.Value)
		if strings.Contains(val, "on") || strings.Contains(val, "enabled") {
			return true
		}
	}
	return false
}

func scanPreferredKeys(p Payload) string {
	for _, f := range p {
		key := strings.ToLower(f.Key)
		for _, pref := range preferredCarrierKeys {
			if strings.Contains(key, pref) {
				if name := matchCarrierValue(f.Value); name != "" {
					return name
				}
				break
			}
		}
	}
	return ""
}

func scanAllValues(p Payload) string {
	for _, f := range p {
		if name := matchCarrierValue(f.Value); name != "" {
			return name
		}
	}
	return ""
}

func matchCarrierValue(value string) string {
	val := strings.ToLower(value)
	for _, rule := range carrierRules {
		for _, pat := range rule.patterns {
			if strings.Contains(val, pat) {
				return rule.name
			}
		}
	}
	return ""
}
