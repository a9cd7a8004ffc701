package predicate

import (
	"strconv"

	"github.com/nycopendata/dobpermits/internal/catalog"
)

// literalMatchesCategory checks literal/column compatibility at
// construction time, so a mismatch fails fast as ErrLiteralTypeMismatch
// rather than surfacing mid-scan.
func literalMatchesCategory(lit Literal, cat catalog.Category) bool {
	switch cat {
	case catalog.Numeric:
		return lit.isNumeric()
	case catalog.String:
		return lit.Kind() == KindString
	case catalog.Boolean:
		return lit.Kind() == KindBool
	default:
		return false
	}
}

// stripQuotes removes one matching pair of surrounding ASCII double quotes
// if present; otherwise it returns field unchanged. It does not unescape
// internal "" sequences — the field slices handed in here come straight
// from the tokenizer, which preserves them verbatim.
func stripQuotes(field []byte) []byte {
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		return field[1 : len(field)-1]
	}
	return field
}

// parseNumeric interprets field as a decimal number; unparseable input is
// best-effort zero, never an error — numeric coercion never fails.
func parseNumeric(field []byte) float64 {
	v, err := strconv.ParseFloat(string(field), 64)
	if err != nil {
		return 0
	}
	return v
}

// isTrue reports whether field is one of the exact boolean-true spellings.
func isTrue(field []byte) bool {
	switch string(field) {
	case "1", "true", "True", "TRUE":
		return true
	default:
		return false
	}
}

// equalNumeric, equalString and equalBoolean implement the three
// category-specific equality protocols from the coercion contract.

func equalNumeric(field []byte, lit Literal) bool {
	return parseNumeric(field) == lit.AsFloat64()
}

func equalString(field []byte, lit Literal) bool {
	return string(stripQuotes(field)) == lit.AsString()
}

func equalBoolean(field []byte, lit Literal) bool {
	return isTrue(field) == lit.AsBool()
}

// inRangeNumeric, inRangeString implement the two range protocols; Range
// over Boolean is rejected at construction (ErrUnsupportedRangeCategory), so
// there is no inRangeBoolean.

func inRangeNumeric(field []byte, lo, hi Literal) bool {
	x := parseNumeric(field)
	return lo.AsFloat64() <= x && x <= hi.AsFloat64()
}

func inRangeString(field []byte, lo, hi Literal) bool {
	x := string(stripQuotes(field))
	return lo.AsString() <= x && x <= hi.AsString()
}
