package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUsage           ErrorCode = "usage_error"
	ErrUnavailable     ErrorCode = "signal_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"
	ErrInvalidTimeout  ErrorCode = "invalid_battery_timeout"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrInitApp       ErrorCode = "init_app_failed"
	ErrDecodePayload ErrorCode = "decode_payload_failed"
	ErrAssemble      ErrorCode = "assemble_report_failed"
	ErrEncodeReport  ErrorCode = "encode_report_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"

	// Store errors
	ErrInitStore  ErrorCode = "init_store_failed"
	ErrSaveReport ErrorCode = "save_report_failed"
	ErrCloseStore ErrorCode = "close_store_failed"
)

var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrUsage:           "Invalid command line usage",
	ErrUnavailable:     "Signal unavailable",
	ErrInvalidConfig:   "Invalid configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrReadConfig:      "Failed to read config file",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInvalidTimeout:  "Invalid battery timeout",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrInitApp:         "Failed to initialize application",
	ErrDecodePayload:   "Failed to decode signal payload",
	ErrAssemble:        "Failed to assemble report",
	ErrEncodeReport:    "Failed to encode report",
	ErrOperationFailed: "Operation failed",
	ErrTimeout:         "Operation timed out",
	ErrInitStore:       "Failed to initialize report store",
	ErrSaveReport:      "Failed to save report",
	ErrCloseStore:      "Failed to close report store",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
