package core

import "errors"

var (
	// ErrInvalidColumns is returned for an oversized column payload, or a preset
	// saved without columns.
	ErrInvalidColumns = errors.New("invalid column payload")

	// ErrTableNotFound is returned for an unregistered table key.
	ErrTableNotFound = errors.New("table not found")

	// ErrPresetNotFound is returned when no preset has the given ID.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetExists is returned when a table already has a preset with the name.
	ErrPresetExists = errors.New("preset name already exists")

	// ErrPresetNameRequired is returned when a preset is created without a name.
	ErrPresetNameRequired = errors.New("preset name is required")

	// ErrPresetsDisabled is returned by preset operations when no database is configured.
	ErrPresetsDisabled = errors.New("presets are disabled")

	// ErrSelectionNotFound is returned for an unknown or expired selection session.
	ErrSelectionNotFound = errors.New("selection not found")

	// ErrMalformedRequest is returned when a request body cannot be decoded.
	ErrMalformedRequest = errors.New("malformed request body")

	// ErrSelectionTooLarge is returned when a selection has more rows than allowed.
	ErrSelectionTooLarge = errors.New("selection has too many rows")
)
