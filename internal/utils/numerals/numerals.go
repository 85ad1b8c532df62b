// Package numerals renders monetary amounts as Traditional Chinese capital
// numerals, the fraud-resistant form legally required on printed receipts.
package numerals

import (
	"strings"

	"github.com/shopspring/decimal"
)

var digits = []string{"零", "壹", "貳", "參", "肆", "伍", "陸", "柒", "捌", "玖"}

// Positional units within one 4-digit group: ones, tens, hundreds, thousands.
var units = []string{"", "拾", "佰", "仟"}

// Scale units between 4-digit groups: 1, 10^4, 10^8, 10^12.
var groupUnits = []string{"", "萬", "億", "兆"}

const (
	negativeMarker = "負"
	currencyUnit   = "元"
	exactMarker    = "整"
	dimeUnit       = "角"
	centUnit       = "分"
)

// ToLegalText converts an amount to its capital-numeral legal text.
// Example: 12345 -> 壹萬貳仟參佰肆拾伍元整. The rendering is deterministic:
// the same amount always yields the same string.
func ToLegalText(amount decimal.Decimal) string {
	amount = amount.Round(2)

	if amount.IsNegative() {
		return negativeMarker + ToLegalText(amount.Neg())
	}

	intPart := amount.Truncate(0)
	cents := amount.Sub(intPart).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	if intPart.IsZero() {
		b.WriteString(digits[0])
	} else {
		b.WriteString(renderInteger(intPart.String()))
	}
	b.WriteString(currencyUnit)

	if cents == 0 {
		b.WriteString(exactMarker)
		return b.String()
	}

	jiao := cents / 10
	fen := cents % 10
	if jiao > 0 {
		b.WriteString(digits[jiao])
		b.WriteString(dimeUnit)
	} else if fen > 0 {
		// Zero dimes before non-zero cents get an explicit zero marker.
		b.WriteString(digits[0])
	}
	if fen > 0 {
		b.WriteString(digits[fen])
		b.WriteString(centUnit)
	}
	return b.String()
}

// renderInteger renders a non-zero, non-negative integer given as its decimal
// digit string. Digits are scanned in 4-digit groups from the most significant
// end; interior runs of zeros collapse to a single 零 and never trail a group.
func renderInteger(s string) string {
	groupCount := (len(s) + 3) / 4
	s = strings.Repeat("0", groupCount*4-len(s)) + s

	var b strings.Builder
	for g := 0; g < groupCount; g++ {
		group := s[g*4 : (g+1)*4]
		var gb strings.Builder
		pendingZero := false
		for i := 0; i < 4; i++ {
			d := int(group[i] - '0')
			if d == 0 {
				pendingZero = true
				continue
			}
			if pendingZero && gb.Len() > 0 {
				gb.WriteString(digits[0])
			}
			pendingZero = false
			gb.WriteString(digits[d])
			gb.WriteString(units[3-i])
		}
		if gb.Len() > 0 {
			b.WriteString(gb.String())
			b.WriteString(groupUnits[groupCount-1-g])
		}
	}

	// A unit-position zero directly after a ten marker is elided.
	return strings.ReplaceAll(b.String(), "拾零", "拾")
}
