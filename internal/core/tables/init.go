// Package tables registers the built-in table views with the core registry.
// Import this package to ensure all views are registered.
package tables

// Each view file uses init() to register its views.
