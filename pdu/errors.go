package pdu

import "errors"

var (
	// ErrMalformedHex is returned when a PDU string contains characters that
	// are not hexadecimal digits or has an odd number of characters.
	ErrMalformedHex = errors.New("malformed PDU hex")

	// ErrShortPDU is returned when a field extends past the end of the PDU.
	//
	// The length octets of a PDU describe how much data follows them. A modem
	// that truncates its output or a corrupted listing will typically surface
	// as this error.
	ErrShortPDU = errors.New("PDU too short")

	// ErrInvalidAddressType is returned for address-type octets without the
	// extension bit or with a reserved type of number.
	ErrInvalidAddressType = errors.New("invalid address type")

	// ErrInvalidAddress is returned when an address cannot be parsed or
	// encoded, for example a destination containing letters.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidDigit is returned when a semi-octet field holds a nibble that
	// is not valid for that field.
	ErrInvalidDigit = errors.New("invalid semi-octet digit")

	// ErrUnsupportedMessageType is returned for message types other than
	// SMS-DELIVER and SMS-SUBMIT.
	ErrUnsupportedMessageType = errors.New("unsupported message type")

	// ErrUnsupportedEncoding is returned when the data coding scheme is
	// neither the GSM default alphabet nor UCS-2.
	ErrUnsupportedEncoding = errors.New("unsupported data coding scheme")

	// ErrInvalidTimestamp is returned when a service-centre timestamp holds
	// out-of-range calendar fields.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidHeader is returned when a user-data header is inconsistent
	// with the user-data length or its information elements overrun it.
	ErrInvalidHeader = errors.New("invalid user data header")

	// ErrInvalidConcatenation is returned when a concatenation element has a
	// sequence number outside [1, total parts].
	ErrInvalidConcatenation = errors.New("invalid concatenation descriptor")

	// ErrInvalidUserData is returned when user data cannot be decoded with
	// its declared encoding.
	ErrInvalidUserData = errors.New("invalid user data")

	// ErrUserDataTooLong is returned by EncodeSubmit when the text does not
	// fit a single SMS.
	ErrUserDataTooLong = errors.New("user data too long")
)
