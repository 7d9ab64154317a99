package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"airbnb-cleaner/config"
	"airbnb-cleaner/models"
)

var (
	// leadingNumberRegexp captures the count at the start of "1.5 shared baths".
	leadingNumberRegexp = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
	// listTokenRegexp captures the items of "['email', 'phone']" style lists.
	listTokenRegexp = regexp.MustCompile(`[^\[\]'",\s][^\[\]'",]*`)
)

const secondsPerDay = 24 * 60 * 60

// parseDay converts an ISO date to days since 1970-01-01. Numeric input is
// taken as an already converted day count.
func parseDay(v models.Value) (float64, bool) {
	if f, ok := v.Float(); ok && v.Kind() == models.KindNumber {
		return f, true
	}
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return 0, false
	}
	return dayNumber(t), true
}

// dayNumber returns the whole days between the Unix epoch and t's calendar date.
func dayNumber(t time.Time) float64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return math.Floor(float64(midnight.Unix()) / secondsPerDay)
}

// parseFraction turns "95%" into 0.95. Percentages outside 0-100% are
// rejected, and a bare number is accepted only when it is already a fraction
// in [0,1].
func parseFraction(v models.Value) (float64, bool) {
	if f, ok := v.Float(); ok && v.Kind() == models.KindNumber {
		return f, f >= 0 && f <= 1
	}
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	if pct, found := strings.CutSuffix(s, "%"); found {
		f, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil || math.IsNaN(f) || f < 0 || f > 100 {
			return 0, false
		}
		return f / 100, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > 1 {
		return 0, false
	}
	return f, true
}

// parseFlag reads "t"/"f" style flags.
func parseFlag(v models.Value) (bool, bool) {
	if b, ok := v.Flag(); ok {
		return b, true
	}
	s, ok := v.Str()
	if !ok {
		return false, false
	}
	switch strings.ToLower(s) {
	case "t", "true":
		return true, true
	case "f", "false":
		return false, true
	}
	return false, false
}

// parsePrice strips currency symbols and thousands separators.
// Examples:
//
//	"$1,200.00" → 1200
//	"€85"       → 85
//	"-$5"       → missing
func parsePrice(v models.Value) (float64, bool) {
	if f, ok := v.Float(); ok && v.Kind() == models.KindNumber {
		return f, f >= 0
	}
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// parseBathroomText reads the count out of bathrooms_text.
func parseBathroomText(s string) (float64, bool) {
	if m := leadingNumberRegexp.FindStringSubmatch(s); len(m) == 2 {
		f, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return f, true
		}
	}
	if strings.Contains(strings.ToLower(s), halfBathToken) {
		return halfBathCount, true
	}
	return 0, false
}

// parseNumber reads a plain numeric cell.
func parseNumber(v models.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	s, ok := v.Str()
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// splitList returns the lower-cased items of a bracketed, quoted list.
func splitList(s string) []string {
	matches := listTokenRegexp.FindAllString(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if tok := strings.ToLower(strings.TrimSpace(m)); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// normaliseKey lower-cases s and collapses internal whitespace.
func normaliseKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
