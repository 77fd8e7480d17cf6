package fram

import "errors"

// Driver errors. Operations wrap these with context; match with errors.Is.
var (
	ErrNotInitialized      = errors.New("fram: device not initialized")
	ErrAlreadyInitialized  = errors.New("fram: device already initialized")
	ErrNilTransport        = errors.New("fram: nil transport")
	ErrInvalidConfig       = errors.New("fram: invalid config")
	ErrAddressOutOfRange   = errors.New("fram: address out of range")
	ErrInvalidLength       = errors.New("fram: invalid transfer length")
	ErrTransmit            = errors.New("fram: transmit failed")
	ErrReceive             = errors.New("fram: receive failed")
	ErrTimeout             = errors.New("fram: transport not ready before deadline")
	ErrMutex               = errors.New("fram: exclusive access failed")
	ErrSink                = errors.New("fram: diagnostic sink failed")
	ErrDiagnosticsDisabled = errors.New("fram: diagnostics disabled")
	ErrCursorUnknown       = errors.New("fram: device cursor unknown")
	ErrVerify              = errors.New("fram: verification failed")
)
