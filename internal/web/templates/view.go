// Package templates holds the templ components for the layout service.
//
// The .templ sources are compiled with `templ generate`; the generated
// *_templ.go files are committed alongside them.
package templates

import (
	"net/url"

	"github.com/JonMunkholm/vtable/internal/core"
	"github.com/a-h/templ"
)

// TableGroup is one data source on the dashboard.
type TableGroup struct {
	Name   string
	Tables []core.TableInfo
}

// TableViewData is everything the table page shows.
type TableViewData struct {
	Info           core.TableInfo
	Layout         *core.LayoutResult
	Presets        []core.Preset
	PresetsEnabled bool
	ActivePresetID string
}

// tableURL links to a table page.
func tableURL(key string) templ.SafeURL {
	return templ.SafeURL("/table/" + url.PathEscape(key))
}

// widthStyle binds a resolved width to an inline style. Widths reaching the
// templates have already passed the strict classifier, so they are plain
// "N%" or "Npx" text.
func widthStyle(width string) templ.SafeCSS {
	return templ.SafeCSS("width:" + width + ";")
}
