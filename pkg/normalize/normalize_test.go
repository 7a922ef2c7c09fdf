//nolint:funlen // ok for tests
package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Duration
		wantErr bool
	}{
		{name: "minutes", raw: "7:12.345", want: 7*time.Minute + 12345*time.Millisecond},
		{name: "padded minutes", raw: "07:02.5", want: 7*time.Minute + 2500*time.Millisecond},
		{name: "bare seconds", raw: "59.123", want: 59123 * time.Millisecond},
		{name: "bare seconds no fraction", raw: "42", want: 42 * time.Second},
		{name: "surrounding space", raw: " 6:43.300 ", want: 6*time.Minute + 43300*time.Millisecond},
		{name: "empty", raw: "", wantErr: true},
		{name: "placeholder", raw: "-", wantErr: true},
		{name: "None", raw: "None", wantErr: true},
		{name: "seconds out of range", raw: "7:75.000", wantErr: true},
		{name: "too many parts", raw: "1:07:12.345", wantErr: true},
		{name: "negative", raw: "-7:12.345", wantErr: true},
		{name: "garbage", raw: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDuration), "err = %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationPadding(t *testing.T) {
	// SS.fff padded with 00: equals SS.fff seconds
	for _, raw := range []string{"0.001", "9.9", "12.345", "59.999"} {
		padded, err := ParseDuration("00:" + raw)
		assert.NoError(t, err)
		bare, err := ParseDuration(raw)
		assert.NoError(t, err)
		assert.Equal(t, padded, bare, raw)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "07:12.345", FormatDuration(7*time.Minute+12345*time.Millisecond))
	assert.Equal(t, "00:59.100", FormatDuration(59100*time.Millisecond))
	d, err := ParseDuration(FormatDuration(6*time.Minute + 35017*time.Millisecond))
	assert.NoError(t, err)
	assert.Equal(t, 6*time.Minute+35017*time.Millisecond, d)
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOk bool
	}{
		{name: "regular", raw: "300 / 1200", want: 0.25, wantOk: true},
		{name: "no spaces", raw: "500/1000", want: 0.5, wantOk: true},
		{name: "decimals", raw: "1.5 / 0.5", want: 3, wantOk: true},
		{name: "zero denominator", raw: "300 / 0", wantOk: false},
		{name: "placeholder numerator", raw: "- / 1200", wantOk: false},
		{name: "placeholder denominator", raw: "300 / -", wantOk: false},
		{name: "empty side", raw: " / 1200", wantOk: false},
		{name: "non numeric", raw: "abc / 1200", wantOk: false},
		{name: "no separator", raw: "300", wantOk: false},
		{name: "placeholder only", raw: "-", wantOk: false},
		{name: "nan side", raw: "NaN / 3", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRatio(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRatioExact(t *testing.T) {
	for _, p := range [][2]float64{{612, 1470}, {1, 3}, {730, 1655}} {
		raw := formatRatio(p[0], p[1])
		got, ok := ParseRatio(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, p[0]/p[1], got, raw)
	}
}

func TestExtractLeadingNumber(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		allowDecimal bool
		want         float64
		wantOk       bool
	}{
		{name: "speed", raw: "312 km/h", want: 312, wantOk: true},
		{name: "seconds decimal", raw: "3.5 s", allowDecimal: true, want: 3.5, wantOk: true},
		{name: "seconds integer mode", raw: "3.5 s", want: 3, wantOk: true},
		{name: "prefix text", raw: "approx. 1445 kg", want: 1445, wantOk: true},
		{name: "n/a", raw: "N/A", wantOk: false},
		{name: "n/a decimal", raw: "N/A", allowDecimal: true, wantOk: false},
		{name: "empty", raw: "", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLeadingNumber(tt.raw, tt.allowDecimal)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractDecimalNumber(t *testing.T) {
	v, ok := ExtractDecimalNumber("1.05 g")
	assert.True(t, ok)
	assert.Equal(t, 1.05, v)

	v, ok = ExtractDecimalNumber("approx. 0.98 g")
	assert.True(t, ok)
	assert.Equal(t, 0.98, v)

	for _, raw := range []string{"1 g", "10 m/s² (1.02 g)", "", "n/a"} {
		_, ok = ExtractDecimalNumber(raw)
		assert.False(t, ok, raw)
	}
}

func TestStripUnitSuffix(t *testing.T) {
	assert.Equal(t, "3.4", StripUnitSuffix("3.4 s", "s"))
	assert.Equal(t, "3.4", StripUnitSuffix("3.4s", "s"))
	assert.Equal(t, "3.4 ss", StripUnitSuffix("3.4 sss", "s"))
	assert.Equal(t, "12.0", StripUnitSuffix("12.0", "s"))
}

func TestPlaceholderAndNullText(t *testing.T) {
	for _, s := range []string{"", " ", "-", "—", "n/a", "N/A"} {
		assert.True(t, IsPlaceholder(s), s)
	}
	assert.False(t, IsPlaceholder("0"))
	for _, s := range []string{"", "None", "nan", "NaN"} {
		assert.True(t, IsNullText(s), s)
	}
	assert.False(t, IsNullText("3.2 s"))
}

func TestPadDuration(t *testing.T) {
	assert.Equal(t, "00:12.345", PadDuration("12.345"))
	assert.Equal(t, "07:12.345", PadDuration(" 07:12.345 "))
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber(" 2.8 ")
	assert.True(t, ok)
	assert.Equal(t, 2.8, v)

	for _, raw := range []string{"", "abc", "NaN", "+Inf", "1,5"} {
		_, ok := ParseNumber(raw)
		assert.False(t, ok, raw)
	}
}
