package catalog

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// pricePattern is the canonical textual shape a price must take before it is
// parsed into an exact decimal: plain digits, at most two fractional digits,
// no sign, no exponent, no separators.
var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// PriceAmount accepts either a JSON number or a JSON string for a monetary
// value and defers canonicalization to the schema pipeline. Numeric input is
// fixed to two decimal places at decode time (strconv 'f' formatting, which
// rounds the binary value half-to-even); string input is kept verbatim apart
// from whitespace trimming. The two-stage number -> string -> decimal path
// forces one canonical textual representation before exact parsing, so no
// binary float survives past this type.
type PriceAmount struct {
	raw     string
	present bool
}

// UnmarshalJSON captures the raw value. It never rejects here; shape errors
// are reported by Canonicalize so they surface through the validation
// pipeline with a field path instead of as a decode failure.
func (p *PriceAmount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		p.raw = strings.TrimSpace(s)
		p.present = true
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		// Booleans, objects and arrays are still a supplied value. Keep
		// the raw token so the shape check rejects it under the price
		// field path instead of failing the whole payload decode.
		p.raw = string(trimmed)
		p.present = true
		return nil
	}
	p.raw = strconv.FormatFloat(f, 'f', 2, 64)
	p.present = true
	return nil
}

// MarshalJSON renders the captured text, mostly so payload round-trips in
// logs keep the original value visible.
func (p PriceAmount) MarshalJSON() ([]byte, error) {
	if !p.present {
		return []byte("null"), nil
	}
	return json.Marshal(p.raw)
}

// Present reports whether any price value was supplied.
func (p PriceAmount) Present() bool {
	return p.present
}

// String returns the canonical textual representation captured at decode.
func (p PriceAmount) String() string {
	return p.raw
}

// Canonicalize validates the captured text against the canonical pattern and
// parses it into an exact decimal. Rejects missing values, scientific
// notation, thousands separators, signs, more than two fractional digits,
// and negative amounts.
func (p PriceAmount) Canonicalize() (decimal.Decimal, error) {
	if !p.present {
		return decimal.Zero, errPriceRequired
	}

	if !pricePattern.MatchString(p.raw) {
		return decimal.Zero, errPriceShape
	}

	d, err := decimal.NewFromString(p.raw)
	if err != nil {
		return decimal.Zero, errPriceShape
	}

	if d.IsNegative() {
		return decimal.Zero, errPriceNegative
	}

	return d, nil
}

// Price failures stay plain errors so they nest cleanly inside
// validation.Errors maps keyed by field path.
type priceError string

func (e priceError) Error() string { return string(e) }

const (
	errPriceRequired priceError = "price is required"
	errPriceShape    priceError = "price must be a number with up to 2 decimal places"
	errPriceNegative priceError = "price must be greater than or equal to 0"
)
