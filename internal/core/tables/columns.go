package tables

import "github.com/JonMunkholm/vtable/internal/layout"

// selectColumn is the leading checkbox column shared by selectable views.
func selectColumn() layout.ColumnSpec {
	return layout.ColumnSpec{Key: "select", Type: layout.ColumnCheckbox, Width: "40px"}
}

// col declares a data column whose key and data index are the same field.
// An empty width leaves the column auto-sized.
func col(field, title, width string) layout.ColumnSpec {
	return layout.ColumnSpec{
		Key:       field,
		Title:     title,
		DataIndex: field,
		Width:     layout.ColumnWidth(width),
	}
}
