// Package layout resolves requested table column widths into concrete widths.
//
// A table's parent width selects the unit family for a whole pass: a percentage
// parent ("100%") resolves every column to a percentage, while a bare number
// ("1200") or pixel value ("1200px") resolves every column to pixels. Columns
// without a usable width share whatever space the sized columns leave over.
//
// # Widths
//
// Width strings are classified by [Classify] into exactly one [Kind] and parsed
// by [ParseWidth] into a tagged [Width]:
//
//	""       auto      (UnitAuto)
//	"120"    number    (UnitNumber)
//	"30%"    percent   (UnitPercent)
//	"120px"  px        (UnitPixel)
//
// Anything else is malformed. A malformed parent width is fatal
// ([ErrInvalidParentWidth]); a malformed column width is reported as a
// [Diagnostic] and the column is treated as auto.
//
// # Resolution
//
// Percent family: only percentage columns are sized. When they leave room,
// auto columns split the remainder; when nothing else shares the row, sized
// columns are stretched to exactly 100%. When sized columns exceed 100%, they
// are shrunk to leave a reserve (10% by default) for the auto columns, or to
// exactly 100% when there are none.
//
// Pixel family: number, px and percentage columns are all sized (percentages
// are converted against the parent). The rules are the same with the parent's
// pixel width in place of 100% and a 100px default reserve.
//
//	cols := []layout.ColumnSpec{
//	    {Key: "name", Width: "30%"},
//	    {Key: "email"},
//	    {Key: "id", Width: "100px"},
//	}
//	resolved, err := layout.NewResolver(cols, "500").Calc()
//	// name=150px email=250px id=100px
//
// A [Resolver] is built per request and discarded after [Resolver.Calc]. It
// copies its input and never mutates the caller's slice.
package layout
