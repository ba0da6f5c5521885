package catalog

import (
	"math"
	"strconv"
	"strings"
)

// ToCents parses a catalog price cell into integer cents. Upstream sheets
// mix two encodings: dollar amounts ("$12.50", "150.00") and raw cent
// integers ("1250"). A value with a currency marker or decimal point is
// dollars; a bare integer is already cents, as is any magnitude past
// plausible dollar range. Blank or unparseable cells yield 0, meaning
// price unknown.
func ToCents(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	dollars := strings.ContainsAny(s, "$.")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}

	if v > 10000 {
		return int64(math.Round(v))
	}
	if dollars {
		return int64(math.Round(v * 100))
	}
	return int64(math.Round(v))
}
