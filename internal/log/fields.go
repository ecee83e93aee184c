package log

// Canonical field name constants for structured logging.
const (
	FieldComponent = "component"
	FieldFile      = "file"
	FieldFragment  = "fragment"
	FieldPreset    = "preset"
	FieldCount     = "count"
	FieldDuration  = "duration"
	FieldHash      = "hash"
	FieldEvent     = "event"
)
