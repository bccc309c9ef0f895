package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Provider errors
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Pipeline errors
	ErrRenderFailed    = fmt.Errorf("report render failed")
	ErrCategoryAborted = fmt.Errorf("category aborted")
	ErrRunNotFound     = fmt.Errorf("run not found")
	ErrUnsupportedSink = fmt.Errorf("unsupported report format")
	ErrHistoryDisabled = fmt.Errorf("run history is disabled")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
