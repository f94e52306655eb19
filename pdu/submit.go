package pdu

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/warthog618/sms/encoding/ucs2"
)

// MaxUCS2Octets is the user data capacity of a single SMS without header.
const MaxUCS2Octets = 140

const (
	// SMS-SUBMIT with a relative validity period.
	submitFirstOctet = 0x11
	// Relative validity of 24 hours.
	validity24h = 0xA7
)

// Submission is an encoded SMS-SUBMIT ready for AT+CMGS.
type Submission struct {
	// Hex is the full PDU including the empty service centre prefix.
	Hex string
	// TPDULength is the octet count AT+CMGS expects. It excludes the
	// service centre prefix.
	TPDULength int
}

// EncodeSubmit builds a single-part UCS-2 SMS-SUBMIT to dest. The service
// centre is left to the modem default.
func EncodeSubmit(dest Address, text string) (Submission, error) {
	ud := ucs2.Encode([]rune(text))
	if len(ud) > MaxUCS2Octets {
		return Submission{}, fmt.Errorf("%w: %d octets", ErrUserDataTooLong, len(ud))
	}

	tpdu := []byte{submitFirstOctet, 0x00}
	tpdu, err := appendAddress(tpdu, dest)
	if err != nil {
		return Submission{}, err
	}
	tpdu = append(tpdu, 0x00, dcsUCS2, validity24h, byte(len(ud)))
	tpdu = append(tpdu, ud...)

	raw := append([]byte{0x00}, tpdu...)
	return Submission{
		Hex:        strings.ToUpper(hex.EncodeToString(raw)),
		TPDULength: len(tpdu),
	}, nil
}
