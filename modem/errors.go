package modem

import "errors"

var (
	// ErrNoDialer is returned when a Worker is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNoPortName is returned by SerialDialer when no device path is set.
	ErrNoPortName = errors.New("serial port name is required")

	// ErrLoopRunning is returned when Run is called on a Worker whose loop is
	// already running. A Worker owns its transport from exactly one goroutine.
	ErrLoopRunning = errors.New("worker loop already running")

	// ErrAlreadyClosed is returned when Close is called on a Worker that has
	// already been closed.
	ErrAlreadyClosed = errors.New("worker already closed")

	// ErrLineTooLong is returned when a modem response line exceeds the
	// maximum allowed length.
	//
	// This typically indicates malformed input, unexpected binary data,
	// or a protocol framing error.
	ErrLineTooLong = errors.New("response line too long")

	// errInvalidTransition is returned by the framer when an event is not
	// allowed in its current state. It points at a bug in the worker loop.
	errInvalidTransition = errors.New("invalid framer transition")

	// errReadTimeout signals a read that returned without data.
	errReadTimeout = errors.New("read timeout")
)
