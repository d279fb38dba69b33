package logging

// Standardized field names for structured logging.
// Keep them stable: dashboards and log queries filter on these keys.
const (
	FieldRequestID  = "request_id"
	FieldCategory   = "category"
	FieldModel      = "model"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldLength     = "complaint_length"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldClientIP   = "client_ip"
	FieldAddress    = "address"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
