package layout

import (
	"fmt"
	"log/slog"
	"math"
)

// Family is the unit family every resolved width is written in.
type Family uint8

const (
	FamilyPixel Family = iota
	FamilyPercent
)

func (f Family) String() string {
	if f == FamilyPercent {
		return "percent"
	}
	return "px"
}

func (f Family) unit() Unit {
	if f == FamilyPercent {
		return UnitPercent
	}
	return UnitPixel
}

// ParentFamily reports the unit family a parent width selects.
// It returns an error wrapping ErrInvalidParentWidth for anything that is not
// a number, percentage or pixel value.
func ParentFamily(parentWidth string) (Family, Width, error) {
	parent, err := ParseWidth(parentWidth)
	if err != nil || parent.IsAuto() {
		return 0, Width{}, &ParentWidthError{Value: parentWidth}
	}
	if parent.Unit == UnitPercent {
		return FamilyPercent, parent, nil
	}
	return FamilyPixel, parent, nil
}

// Resolver computes concrete widths for one list of columns.
type Resolver[C Sizable[C]] struct {
	columns     []C
	parentWidth string
	opts        options
	diagnostics []Diagnostic
}

// NewResolver returns a Resolver working on its own copy of columns.
func NewResolver[C Sizable[C]](columns []C, parentWidth string, opts ...Option) *Resolver[C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	work := make([]C, len(columns))
	copy(work, columns)

	return &Resolver[C]{
		columns:     work,
		parentWidth: parentWidth,
		opts:        o,
	}
}

// Diagnostics returns the malformed column widths found by the last Calc.
func (r *Resolver[C]) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Calc returns a new slice, in input order, where every column's width is a
// concrete percentage or pixel string matching the parent's unit family.
func (r *Resolver[C]) Calc() ([]C, error) {
	r.diagnostics = nil

	family, parent, err := ParentFamily(r.parentWidth)
	if err != nil {
		return nil, err
	}

	out := make([]C, len(r.columns))
	if len(r.columns) == 0 {
		return out, nil
	}

	total, reserve := 100.0, r.opts.percentReserve
	if family == FamilyPixel {
		total, reserve = parent.Amount, r.opts.pixelReserve
	}

	slots, sum, unsized := r.measure(family, total)
	alloc := allocate(total, reserve, sum, unsized, len(slots))

	for i, c := range r.columns {
		v := alloc.share
		if slots[i].sized && !alloc.even {
			v = alloc.scale(slots[i].amount)
		}
		out[i] = c.WithWidth(Width{Amount: v, Unit: family.unit()}.String())
	}
	return out, nil
}

// slot is one column's contribution in family units.
type slot struct {
	sized  bool
	amount float64
}

// measure classifies every column. Percentage columns are sized in both
// families; number and px columns only in the pixel family, where percentages
// are converted against the parent.
func (r *Resolver[C]) measure(family Family, total float64) (slots []slot, sum float64, unsized int) {
	slots = make([]slot, len(r.columns))

	for i, c := range r.columns {
		raw := c.RawWidth()
		w, err := ParseWidth(raw)
		if err != nil {
			r.report(i, c, raw)
			unsized++
			continue
		}

		switch {
		case w.Unit == UnitPercent && family == FamilyPercent:
			slots[i] = slot{sized: true, amount: w.Amount}
		case w.Unit == UnitPercent:
			slots[i] = slot{sized: true, amount: w.Amount * total / 100}
		case family == FamilyPixel && (w.Unit == UnitNumber || w.Unit == UnitPixel):
			slots[i] = slot{sized: true, amount: w.Amount}
		default:
			unsized++
			continue
		}
		sum += slots[i].amount
	}
	return slots, sum, unsized
}

func (r *Resolver[C]) report(index int, c C, raw string) {
	d := Diagnostic{
		Code:    DiagMalformedColumnWidth,
		Index:   index,
		Value:   raw,
		Message: fmt.Sprintf("width %q is not a number, percentage or pixel value; treated as auto", raw),
	}
	if k, ok := any(c).(keyed); ok {
		d.Key = k.ColumnKey()
	}
	r.diagnostics = append(r.diagnostics, d)

	r.opts.logger.Warn("layout: malformed column width",
		"index", index,
		"key", d.Key,
		"width", raw,
	)
}

// allocation says how sized and auto columns split the total.
type allocation struct {
	keep   bool    // sized columns keep their requested amount
	even   bool    // every column receives share
	target float64 // sized columns are scaled so they sum to target
	sum    float64
	share  float64 // amount given to each auto column
}

func (a allocation) scale(v float64) float64 {
	if a.keep {
		return v
	}
	return v * a.target / a.sum
}

// allocate decides the split. With rest = total - sum:
//   - rest >= 0, auto columns present: sized keep, auto split rest.
//   - rest >= 0, none: sized stretch to total.
//   - rest < 0, auto columns present: sized shrink to total - reserve, auto
//     split the reserve.
//   - rest < 0, none: sized shrink to total.
//
// With nothing to scale (sum == 0, no auto columns) every column gets an equal
// share. The reserve never exceeds the total, so no amount goes negative.
func allocate(total, reserve, sum float64, unsized, count int) allocation {
	rest := total - sum

	switch {
	case unsized == 0 && sum == 0:
		return allocation{even: true, share: total / float64(count)}
	case rest >= 0 && unsized > 0:
		return allocation{keep: true, share: rest / float64(unsized)}
	case rest == 0:
		return allocation{keep: true}
	case rest > 0:
		return allocation{target: total, sum: sum}
	case unsized > 0:
		if !(reserve > 0) {
			reserve = 0
		}
		reserve = math.Min(reserve, total)
		return allocation{
			target: total - reserve,
			sum:    sum,
			share:  reserve / float64(unsized),
		}
	default:
		return allocation{target: total, sum: sum}
	}
}

// Resolve is a convenience wrapper for ColumnSpec slices that returns the
// resolved columns together with their diagnostics.
func Resolve(columns []ColumnSpec, parentWidth string, opts ...Option) ([]ColumnSpec, []Diagnostic, error) {
	r := NewResolver(columns, parentWidth, opts...)
	out, err := r.Calc()
	if err != nil {
		return nil, nil, err
	}
	return out, r.Diagnostics(), nil
}
