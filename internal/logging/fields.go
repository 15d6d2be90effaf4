package logging

import "log/slog"

// Shared structured log keys.
const (
	FieldError      = "error"
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldSessionID  = "session_id"
	FieldEntryID    = "entry_id"
	FieldOperation  = "op"
	FieldResource   = "resource"
	FieldBrand      = "brand"
)

// WithCommon appends the service and version attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
