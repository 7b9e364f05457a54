package layout

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the textual classification of a width string.
type Kind uint8

const (
	KindUnknown Kind = iota // Empty, negative or otherwise malformed
	KindNumber              // "120"
	KindPercent             // "30%"
	KindPx                  // "120px"
)

// String returns the classification name used in logs and API responses.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPercent:
		return "percent"
	case KindPx:
		return "px"
	default:
		return "unknown"
	}
}

// Classify reports which width form s is written in.
// Every input yields exactly one Kind.
func Classify(s string) Kind {
	switch {
	case strings.HasSuffix(s, "%"):
		if isDecimal(s[:len(s)-1]) {
			return KindPercent
		}
	case strings.HasSuffix(s, "px"):
		if isDecimal(s[:len(s)-2]) {
			return KindPx
		}
	case isDecimal(s):
		return KindNumber
	}
	return KindUnknown
}

// isDecimal accepts non-negative decimal text with at least one digit and at
// most one decimal point: "12", "12.5", ".5", "12.".
func isDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Unit specifies how a Width amount is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Share of leftover space
	UnitNumber              // Unitless; pixels or ignored depending on family
	UnitPercent             // Percentage of the parent
	UnitPixel               // Absolute pixels
)

// String returns the unit suffix written after an amount.
func (u Unit) String() string {
	switch u {
	case UnitPercent:
		return "%"
	case UnitPixel:
		return "px"
	default:
		return ""
	}
}

// Width is a parsed column or parent width.
type Width struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Width that takes a share of leftover space.
func Auto() Width {
	return Width{Unit: UnitAuto}
}

// Number returns a unitless Width.
func Number(n float64) Width {
	return Width{Amount: n, Unit: UnitNumber}
}

// Percent returns a Width on a 0-100 scale (50.0 = 50%).
func Percent(p float64) Width {
	return Width{Amount: p, Unit: UnitPercent}
}

// Pixels returns an absolute pixel Width.
func Pixels(px float64) Width {
	return Width{Amount: px, Unit: UnitPixel}
}

// IsAuto returns true if the width takes a share of leftover space.
func (w Width) IsAuto() bool {
	return w.Unit == UnitAuto
}

// String formats the width in the textual form ParseWidth accepts.
// Auto widths format as the empty string.
func (w Width) String() string {
	if w.Unit == UnitAuto {
		return ""
	}
	return formatAmount(w.Amount) + w.Unit.String()
}

// ParseWidth parses a width string. The empty string is Auto; any string
// Classify reports as KindUnknown returns a *MalformedWidthError.
func ParseWidth(s string) (Width, error) {
	if s == "" {
		return Auto(), nil
	}

	var (
		text string
		unit Unit
	)
	switch Classify(s) {
	case KindNumber:
		text, unit = s, UnitNumber
	case KindPercent:
		text, unit = s[:len(s)-1], UnitPercent
	case KindPx:
		text, unit = s[:len(s)-2], UnitPixel
	default:
		return Width{}, &MalformedWidthError{Value: s}
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) {
		return Width{}, &MalformedWidthError{Value: s}
	}
	return Width{Amount: n, Unit: unit}, nil
}

// amountPrecision rounds away float noise such as 50.000000000000004.
const amountPrecision = 1e10

// formatAmount writes a non-negative amount in its shortest decimal form.
// Negative and NaN amounts are written as 0.
func formatAmount(v float64) string {
	if !(v > 0) {
		return "0"
	}
	if math.IsInf(v, 1) {
		v = math.MaxFloat64
	}
	if r := math.Round(v*amountPrecision) / amountPrecision; !math.IsInf(r, 0) {
		v = r
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
