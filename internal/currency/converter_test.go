package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustConverter(t *testing.T, rates Rates) *Converter {
	t.Helper()
	c, err := NewConverter(rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNewConverterValidation(t *testing.T) {
	if _, err := NewConverter(Rates{ToSettlement: decimal.Zero}); err == nil {
		t.Fatal("expected error for zero forward rate")
	}
	if _, err := NewConverter(Rates{
		ToSettlement: decimal.RequireFromString("0.9133"),
		ToDisplay:    decimal.RequireFromString("-1"),
	}); err == nil {
		t.Fatal("expected error for negative reverse rate")
	}
}

func TestConversionRoundsHalfUpToTwoPlaces(t *testing.T) {
	c := mustConverter(t, Rates{ToSettlement: decimal.RequireFromString("0.9133")})

	cases := []struct {
		name   string
		in     string
		expect string
	}{
		{"hundred", "100.00", "91.33"},
		{"rounds half up", "50.00", "45.67"},  // 45.665 -> 45.67
		{"small amount", "0.05", "0.05"},      // 0.045665 -> 0.05
		{"large amount", "12345.67", "11275.30"},
		{"zero", "0.00", "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ToSettlement(decimal.RequireFromString(tc.in))
			if got.String() != decimal.RequireFromString(tc.expect).String() {
				t.Fatalf("expected %s, got %s", tc.expect, got)
			}
			if got.Exponent() < -2 {
				t.Fatalf("expected at most 2 decimal places, got exponent %d", got.Exponent())
			}
		})
	}
}

func TestConversionIsReferentiallyTransparent(t *testing.T) {
	c := mustConverter(t, Rates{ToSettlement: decimal.RequireFromString("0.9133")})
	in := decimal.RequireFromString("250.00")

	first := c.ToSettlement(in)
	for i := 0; i < 10; i++ {
		if got := c.ToSettlement(in); !got.Equal(first) {
			t.Fatalf("conversion not stable: %s vs %s", got, first)
		}
	}
}

// Round trips are not required to return to the starting amount: each
// direction rounds to 2 decimal places, and the reverse rate may be pinned
// independently of the forward rate.
func TestRoundTripMayDrift(t *testing.T) {
	c := mustConverter(t, Rates{
		ToSettlement: decimal.RequireFromString("0.9133"),
		ToDisplay:    decimal.RequireFromString("1.0950"),
	})

	in := decimal.RequireFromString("100.00")
	back := c.ToDisplay(c.ToSettlement(in))
	// 100.00 -> 91.33 -> 100.01 with these constants.
	if back.Equal(in) {
		t.Fatalf("expected drift with independent rates, got exact round trip %s", back)
	}
}

func TestReciprocalReverseRateDefault(t *testing.T) {
	c := mustConverter(t, Rates{ToSettlement: decimal.RequireFromString("0.80")})
	got := c.ToDisplay(decimal.RequireFromString("80.00"))
	if !got.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected 100.00 via reciprocal rate, got %s", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		expect string
	}{
		{"plain", "91.33", "91.33"},
		{"thousands", "12345.67", "12,345.67"},
		{"millions", "1234567.80", "1,234,567.80"},
		{"negative", "-500.00", "-500.00"},
		{"negative grouped", "-1234.50", "-1,234.50"},
		{"pads decimals", "7", "7.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(decimal.RequireFromString(tc.in)); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("1,234.56")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("unexpected value: %s", d)
	}

	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Parse("abc"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}
