package sms

import "errors"

var (
	// ErrMessageTooLong is returned by SendMessage when the content does not
	// fit a single UCS-2 message. Content is never split into several parts.
	ErrMessageTooLong = errors.New("message too long")

	// ErrInvalidAddress is returned by SendMessage when the destination is
	// not a phone number.
	ErrInvalidAddress = errors.New("invalid destination address")

	// ErrSendTimeout is returned when the modem did not acknowledge a
	// submitted message within the reply timeout. The message may still have
	// been sent.
	ErrSendTimeout = errors.New("send not acknowledged")

	// ErrManagerStopped is returned by Client calls once the manager loop has
	// exited.
	ErrManagerStopped = errors.New("messaging manager stopped")

	// ErrLoopRunning is returned when Run is called on a Manager whose loop
	// is already running.
	ErrLoopRunning = errors.New("manager loop already running")
)
