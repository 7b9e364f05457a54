// Package core provides the business logic for table layouts.
//
// This package contains the domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
//   - Table Views: Registered via the registry, each view declares its
//     columns and their requested widths.
//   - Service: The main entry point for resolving layouts, managing saved
//     presets and tracking row selections.
//   - Presets: Named column layouts persisted in PostgreSQL. Optional; the
//     service runs without a database and reports ErrPresetsDisabled.
//   - Selections: Per-client checked-row sessions with an idle TTL, pruned
//     by [Service.StartSelectionJanitor].
//
// # Table Registry
//
// Views are registered at init time using [Register]:
//
//	core.Register(core.TableView{
//	    Info: core.TableInfo{Key: "sfdc_customers", Group: "SFDC", Label: "Customers"},
//	    Columns: []layout.ColumnSpec{
//	        {Key: "select", Type: layout.ColumnCheckbox, Width: "40px"},
//	        {Key: "account_name", Title: "Account", DataIndex: "account_name", Width: "30%"},
//	        {Key: "type", Title: "Type", DataIndex: "type"},
//	    },
//	})
//
// # Resolving
//
// [Service.ResolveTable] and [Service.ResolveColumns] hand the columns to the
// layout package with the configured reserves. Malformed widths never fail a
// request; they are resolved as auto and returned as diagnostics.
//
// # Error Handling
//
// Domain errors are sentinels wrapped with context. [MapError] turns them
// into coded user messages (LAY, TBL, PRE, SEL).
package core
