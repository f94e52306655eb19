package pdu

import (
	"fmt"
	"strings"
)

// Format describes how the digits of an Address are to be interpreted.
type Format int

const (
	// FormatShortCode covers national, network specific and unknown numbers.
	FormatShortCode Format = iota
	// FormatInternational numbers carry a country code and print with a
	// leading "+".
	FormatInternational
	// FormatAlphanumeric addresses hold a GSM 7-bit encoded sender name.
	FormatAlphanumeric
)

func (f Format) String() string {
	switch f {
	case FormatShortCode:
		return "short-code"
	case FormatInternational:
		return "international"
	case FormatAlphanumeric:
		return "alphanumeric"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Type-of-number values from bits 4-6 of the address-type octet.
const (
	tonUnknown         = 0
	tonInternational   = 1
	tonNational        = 2
	tonNetworkSpecific = 3
	tonSubscriber      = 4
	tonAlphanumeric    = 5
	tonAbbreviated     = 6

	addressTypeExtension = 0x80
	// ISDN/telephone numbering plan.
	numberingPlanISDN = 0x01

	maxAddressDigits = 20
)

// Address is a phone number or sender name as carried in a PDU.
type Address struct {
	Format Format
	Digits string
}

// String renders the address the way it is shown to users.
func (a Address) String() string {
	if a.Format == FormatInternational && a.Digits != "" {
		return "+" + a.Digits
	}
	return a.Digits
}

// ParseAddress builds an outbound address from user input. A leading "+"
// selects the international format; spaces and dashes are ignored.
func ParseAddress(s string) (Address, error) {
	s = strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))

	addr := Address{Format: FormatShortCode}
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		addr.Format = FormatInternational
		s = rest
	}

	if !isDecimal(s) || len(s) > maxAddressDigits {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	addr.Digits = s
	return addr, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var semiOctetDigits = [16]byte{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'*', '#', 'a', 'b', 'c', 0,
}

// decodeSemiOctets reads swapped-nibble BCD digits. The low nibble of each
// octet is the first digit. A trailing 0xF nibble pads an odd digit count.
func decodeSemiOctets(b []byte, digits int) (string, error) {
	var sb strings.Builder
	sb.Grow(digits)
	for i := 0; i < digits; i++ {
		o := b[i/2]
		n := o & 0x0F
		if i%2 == 1 {
			n = o >> 4
		}
		if n == 0x0F {
			return "", fmt.Errorf("%w: filler inside address", ErrInvalidDigit)
		}
		sb.WriteByte(semiOctetDigits[n])
	}
	if digits%2 == 1 && b[len(b)-1]>>4 != 0x0F {
		return "", fmt.Errorf("%w: missing filler after odd digit count", ErrInvalidDigit)
	}
	return sb.String(), nil
}

// encodeSemiOctets is the inverse of decodeSemiOctets for decimal digits.
func encodeSemiOctets(digits string) []byte {
	out := make([]byte, (len(digits)+1)/2)
	for i := 0; i < len(digits); i++ {
		n := digits[i] - '0'
		if i%2 == 0 {
			out[i/2] = 0xF0 | n
		} else {
			out[i/2] = out[i/2]&0x0F | n<<4
		}
	}
	return out
}

func formatForType(typ byte) (Format, error) {
	if typ&addressTypeExtension == 0 {
		return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidAddressType, typ)
	}
	switch ton := (typ >> 4) & 0x07; ton {
	case tonInternational:
		return FormatInternational, nil
	case tonUnknown, tonNational, tonNetworkSpecific, tonSubscriber, tonAbbreviated:
		return FormatShortCode, nil
	case tonAlphanumeric:
		return FormatAlphanumeric, nil
	default:
		return 0, fmt.Errorf("%w: reserved type of number %d", ErrInvalidAddressType, ton)
	}
}

// readServiceCenter decodes the SMSC prefix. Its length counts octets
// including the type octet; zero means the modem default.
func readServiceCenter(r *reader) (Address, error) {
	n, err := r.octet("service center length")
	if err != nil {
		return Address{}, err
	}
	if n == 0 {
		return Address{}, nil
	}
	typ, err := r.octet("service center type")
	if err != nil {
		return Address{}, err
	}
	format, err := formatForType(typ)
	if err != nil {
		return Address{}, fmt.Errorf("service center: %w", err)
	}
	if format == FormatAlphanumeric {
		return Address{}, fmt.Errorf("service center: %w: alphanumeric", ErrInvalidAddressType)
	}
	b, err := r.octets("service center", int(n)-1)
	if err != nil {
		return Address{}, err
	}
	digits := 2 * len(b)
	if len(b) > 0 && b[len(b)-1]>>4 == 0x0F {
		digits--
	}
	s, err := decodeSemiOctets(b, digits)
	if err != nil {
		return Address{}, fmt.Errorf("service center: %w", err)
	}
	return Address{Format: format, Digits: s}, nil
}

// readAddress decodes an originating or destination address whose length
// octet counts useful semi-octets.
func readAddress(r *reader, field string) (Address, error) {
	n, err := r.octet(field + " length")
	if err != nil {
		return Address{}, err
	}
	typ, err := r.octet(field + " type")
	if err != nil {
		return Address{}, err
	}
	format, err := formatForType(typ)
	if err != nil {
		return Address{}, fmt.Errorf("%s: %w", field, err)
	}
	b, err := r.octets(field, (int(n)+1)/2)
	if err != nil {
		return Address{}, err
	}

	if format == FormatAlphanumeric {
		// n counts the semi-octets the packed name occupies.
		septets := int(n) * 4 / 7
		return Address{Format: format, Digits: septetsToText(UnpackSeptets(b, septets))}, nil
	}

	s, err := decodeSemiOctets(b, int(n))
	if err != nil {
		return Address{}, fmt.Errorf("%s: %w", field, err)
	}
	return Address{Format: format, Digits: s}, nil
}

// appendAddress encodes a numeric destination address.
func appendAddress(dst []byte, a Address) ([]byte, error) {
	var typ byte = addressTypeExtension | numberingPlanISDN
	switch a.Format {
	case FormatInternational:
		typ |= tonInternational << 4
	case FormatShortCode:
		typ |= tonUnknown << 4
	default:
		return nil, fmt.Errorf("%w: cannot send to %s address", ErrInvalidAddress, a.Format)
	}
	if !isDecimal(a.Digits) || len(a.Digits) > maxAddressDigits {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, a.Digits)
	}
	dst = append(dst, byte(len(a.Digits)), typ)
	return append(dst, encodeSemiOctets(a.Digits)...), nil
}
