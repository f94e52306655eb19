package radio

import "errors"

var (
	// ErrModemUnresponsive is returned by New when the modem does not answer
	// the startup handshake in time.
	ErrModemUnresponsive = errors.New("modem did not answer")

	// ErrClosed is returned by Client calls once the radio has stopped.
	ErrClosed = errors.New("radio closed")

	// ErrAlreadyClosed is returned when Close is called more than once.
	ErrAlreadyClosed = errors.New("radio already closed")
)
