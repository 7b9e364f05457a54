package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/vtable/internal/layout"
)

var (
	registry   = make(map[string]TableView)
	registryMu sync.RWMutex
)

// Register adds a table view to the registry.
// Panics if the key is already registered or a column key repeats.
func Register(view TableView) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[view.Info.Key]; exists {
		panic(fmt.Sprintf("table already registered: %s", view.Info.Key))
	}

	seen := make(map[string]bool, len(view.Columns))
	for _, col := range view.Columns {
		if seen[col.Key] {
			panic(fmt.Sprintf("table %s: duplicate column key %q", view.Info.Key, col.Key))
		}
		seen[col.Key] = true
		if col.Type == layout.ColumnCheckbox {
			view.Info.Selectable = true
		}
	}

	view.Columns = append([]layout.ColumnSpec(nil), view.Columns...)
	registry[view.Info.Key] = view
}

// Get returns a table view by key.
// Returns false if not found.
func Get(key string) (TableView, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	view, ok := registry[key]
	if ok {
		view.Columns = append([]layout.ColumnSpec(nil), view.Columns...)
	}
	return view, ok
}

// All returns all registered table views.
// Sorted by group then by key for consistent ordering.
func All() []TableView {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]TableView, 0, len(registry))
	for _, view := range registry {
		result = append(result, view)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all table views for a specific group.
// Sorted by key for consistent ordering.
func ByGroup(group string) []TableView {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []TableView
	for _, view := range registry {
		if view.Info.Group == group {
			result = append(result, view)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func Groups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, view := range registry {
		seen[view.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// TableCount returns the number of registered tables.
func TableCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered tables.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]TableView)
}
