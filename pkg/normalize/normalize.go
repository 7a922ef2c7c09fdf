// Package normalize converts the raw strings scraped from the site into typed values.
//
// Ratio and number extraction return (value, ok). A false ok means the value
// is absent, which is expected for many entries and not an error.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDuration = errors.New("invalid duration")

var (
	minutesRegex = regexp.MustCompile(`^\d+$`)
	secondsRegex = regexp.MustCompile(`^(\d{1,2})(?:\.(\d{1,9}))?$`)
	integerRegex = regexp.MustCompile(`\d+`)
	numberRegex  = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// IsPlaceholder reports whether raw is a textual stand-in for "no value"
func IsPlaceholder(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "-", "–", "—", "n/a", "?":
		return true
	}
	return false
}

// IsNullText reports whether raw is one of the null markers produced by
// earlier processing stages ("None", "nan") or empty.
func IsNullText(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || strings.EqualFold(s, "none") || strings.EqualFold(s, "nan")
}

// PadDuration prefixes bare seconds values (SS.fff) with "00:"
func PadDuration(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ":") {
		return "00:" + s
	}
	return s
}

// ParseDuration parses lap times in the form MM:SS.fff. Bare SS.fff values are
// accepted via PadDuration.
func ParseDuration(raw string) (time.Duration, error) {
	if IsPlaceholder(raw) || IsNullText(raw) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	parts := strings.Split(PadDuration(raw), ":")
	if len(parts) != 2 || !minutesRegex.MatchString(parts[0]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidDuration, raw, err)
	}
	groups := secondsRegex.FindStringSubmatch(parts[1])
	if groups == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	seconds, _ := strconv.Atoi(groups[1])
	if seconds >= 60 {
		return 0, fmt.Errorf("%w: %q: seconds out of range", ErrInvalidDuration, raw)
	}
	var nanos int
	if groups[2] != "" {
		// right pad the fraction to nanoseconds
		nanos, _ = strconv.Atoi(groups[2] + strings.Repeat("0", 9-len(groups[2])))
	}
	d := time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanos)
	if d < 0 {
		return 0, fmt.Errorf("%w: %q: overflow", ErrInvalidDuration, raw)
	}
	return d, nil
}

// FormatDuration renders d as MM:SS.fff (millisecond precision)
func FormatDuration(d time.Duration) string {
	ms := d.Round(time.Millisecond).Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms%60000)/1000, ms%1000)
}

// ParseNumber parses a finite float from raw after trimming whitespace
func ParseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseRatio computes numerator/denominator of "<a> / <b>".
// Placeholders, non numeric sides and a zero denominator yield ok=false.
func ParseRatio(raw string) (float64, bool) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return 0, false
	}
	if IsPlaceholder(parts[0]) || IsPlaceholder(parts[1]) {
		return 0, false
	}
	num, ok := ParseNumber(parts[0])
	if !ok {
		return 0, false
	}
	denom, ok := ParseNumber(parts[1])
	if !ok || denom == 0 {
		return 0, false
	}
	return num / denom, true
}

// ExtractLeadingNumber returns the first run of digits in raw, e.g. "312 km/h" -> 312.
// With allowDecimal a single decimal part is included ("3.5 s" -> 3.5).
func ExtractLeadingNumber(raw string, allowDecimal bool) (float64, bool) {
	re := integerRegex
	if allowDecimal {
		re = numberRegex
	}
	match := re.FindString(raw)
	if match == "" {
		return 0, false
	}
	return ParseNumber(match)
}

// ExtractDecimalNumber is like ExtractLeadingNumber but the first number in raw
// must have a decimal point. "1.05 g" -> 1.05, "1 g" and "10 m/s² (1.02 g)" -> absent
func ExtractDecimalNumber(raw string) (float64, bool) {
	match := numberRegex.FindString(raw)
	if !strings.Contains(match, ".") {
		return 0, false
	}
	return ParseNumber(match)
}

// StripUnitSuffix removes a single trailing unit marker, e.g. "3.4 s" -> "3.4"
func StripUnitSuffix(raw, suffix string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, suffix)
	return strings.TrimSpace(s)
}
