package at

import "errors"

var (
	// ErrWorkerStopped is returned when a command is submitted after the
	// modem worker has exited.
	//
	// Commands are never dropped silently. Callers holding a Pipeline past
	// the lifetime of the worker receive this error on every submission.
	ErrWorkerStopped = errors.New("modem worker stopped")

	// ErrInvalidNumber is returned when a dial string contains characters
	// other than digits, '*', '#' and '+'.
	ErrInvalidNumber = errors.New("invalid dial number")

	// ErrResultCode is wrapped by every error caused by a final result code
	// other than OK.
	ErrResultCode = errors.New("modem returned an error result")

	// ErrMissingResult is returned when a reply has no final result code.
	ErrMissingResult = errors.New("reply has no result code")

	// ErrMalformedReply is returned when an information response does not
	// have the expected shape.
	ErrMalformedReply = errors.New("malformed reply")
)
