package layout

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Sizable is implemented by column types the Resolver can resize.
// WithWidth must return a copy; the receiver is never modified.
type Sizable[C any] interface {
	RawWidth() string
	WithWidth(width string) C
}

// keyed is optionally implemented by columns to label diagnostics.
type keyed interface {
	ColumnKey() string
}

// ColumnWidth is a column's requested width as the caller wrote it:
// "" (auto), "120", "30%" or "120px". Its JSON form may be a string,
// a number or null.
type ColumnWidth string

// UnmarshalJSON accepts `"30%"`, `120` and `null`.
func (w *ColumnWidth) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*w = ""
	case string:
		*w = ColumnWidth(val)
	case float64:
		*w = ColumnWidth(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		return fmt.Errorf("column width must be a string or number, got %s", string(b))
	}
	return nil
}

// Parse parses the width. See ParseWidth.
func (w ColumnWidth) Parse() (Width, error) {
	return ParseWidth(string(w))
}

// ColumnType marks columns with special rendering.
type ColumnType string

const (
	ColumnData     ColumnType = ""
	ColumnCheckbox ColumnType = "checkbox"
)

// ColumnSpec describes one table column.
type ColumnSpec struct {
	Key       string      `json:"key"`
	Title     string      `json:"title"`
	DataIndex string      `json:"dataIndex"`
	Type      ColumnType  `json:"type,omitempty"`
	Width     ColumnWidth `json:"width,omitempty"`
}

func (c ColumnSpec) RawWidth() string {
	return string(c.Width)
}

func (c ColumnSpec) WithWidth(width string) ColumnSpec {
	c.Width = ColumnWidth(width)
	return c
}

func (c ColumnSpec) ColumnKey() string {
	return c.Key
}
