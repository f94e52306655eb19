package pdu

import (
	"fmt"

	"github.com/warthog618/sms/encoding/ucs2"
)

// Encoding is the alphabet user data is written in.
type Encoding int

const (
	EncodingGsm7Bit Encoding = iota
	EncodingUTF16
	EncodingUnknown
)

func (e Encoding) String() string {
	switch e {
	case EncodingGsm7Bit:
		return "gsm7"
	case EncodingUTF16:
		return "utf16"
	default:
		return "unknown"
	}
}

// Data coding scheme values that are understood.
const (
	dcsGsm7 = 0x00
	dcsUCS2 = 0x08
)

func encodingForDCS(dcs byte) (Encoding, error) {
	switch dcs {
	case dcsGsm7:
		return EncodingGsm7Bit, nil
	case dcsUCS2:
		return EncodingUTF16, nil
	default:
		return EncodingUnknown, fmt.Errorf("%w: 0x%02X", ErrUnsupportedEncoding, dcs)
	}
}

// IEI identifies an information element in a user data header.
type IEI byte

// IEIConcatenated is the concatenated short message element with an 8-bit
// reference number.
const IEIConcatenated IEI = 0x00

// InformationElement is one tagged entry of a user data header.
type InformationElement struct {
	ID   IEI
	Data []byte
}

// Header is a decoded user data header.
type Header struct {
	Elements      []InformationElement
	Concatenation *ConcatenationInfo
}

// ConcatenationInfo identifies one part of a concatenated message.
type ConcatenationInfo struct {
	Reference      uint8
	TotalParts     uint8
	SequenceNumber uint8
}

// UserData is the decoded payload of a PDU.
type UserData struct {
	Encoding Encoding
	Text     string
	Header   *Header
}

// Concatenation returns the concatenation descriptor if the message is one
// part of a longer message.
func (u UserData) Concatenation() (ConcatenationInfo, bool) {
	if u.Header == nil || u.Header.Concatenation == nil {
		return ConcatenationInfo{}, false
	}
	return *u.Header.Concatenation, true
}

func decodeHeader(b []byte) (*Header, error) {
	h := &Header{}
	for len(b) > 0 {
		if len(b) < 2 {
			return nil, fmt.Errorf("%w: truncated element", ErrInvalidHeader)
		}
		id, n := IEI(b[0]), int(b[1])
		if len(b) < 2+n {
			return nil, fmt.Errorf("%w: element 0x%02X overruns header", ErrInvalidHeader, byte(id))
		}
		ie := InformationElement{ID: id, Data: append([]byte(nil), b[2:2+n]...)}
		h.Elements = append(h.Elements, ie)
		b = b[2+n:]

		if id != IEIConcatenated {
			continue
		}
		if n != 3 {
			return nil, fmt.Errorf("%w: length %d", ErrInvalidConcatenation, n)
		}
		ci := ConcatenationInfo{Reference: ie.Data[0], TotalParts: ie.Data[1], SequenceNumber: ie.Data[2]}
		if ci.SequenceNumber < 1 || ci.SequenceNumber > ci.TotalParts {
			return nil, fmt.Errorf("%w: part %d of %d", ErrInvalidConcatenation, ci.SequenceNumber, ci.TotalParts)
		}
		h.Concatenation = &ci
	}
	return h, nil
}

// readUserData decodes the user data length, optional header and payload.
// The length counts septets for GSM 7-bit and octets for UCS-2.
func readUserData(r *reader, enc Encoding, hasHeader bool) (UserData, error) {
	udl, err := r.octet("user data length")
	if err != nil {
		return UserData{}, err
	}
	ud := UserData{Encoding: enc}

	octets := int(udl)
	if enc == EncodingGsm7Bit {
		octets = packedLen(int(udl))
	}
	b, err := r.octets("user data", octets)
	if err != nil {
		return UserData{}, err
	}

	headerLen := 0
	if hasHeader {
		if len(b) < 1 {
			return UserData{}, fmt.Errorf("%w: missing header length", ErrInvalidHeader)
		}
		headerLen = int(b[0]) + 1
		if headerLen > len(b) {
			return UserData{}, fmt.Errorf("%w: header length %d exceeds user data", ErrInvalidHeader, headerLen-1)
		}
		if ud.Header, err = decodeHeader(b[1:headerLen]); err != nil {
			return UserData{}, err
		}
	}

	switch enc {
	case EncodingGsm7Bit:
		// The header is padded to a septet boundary.
		skip := (headerLen*8 + 6) / 7
		if skip > int(udl) {
			return UserData{}, fmt.Errorf("%w: header longer than user data", ErrInvalidHeader)
		}
		septets := UnpackSeptets(b, int(udl))
		ud.Text = septetsToText(septets[skip:])
	case EncodingUTF16:
		payload := b[headerLen:]
		if len(payload)%2 != 0 {
			return UserData{}, fmt.Errorf("%w: odd UCS-2 length %d", ErrInvalidUserData, len(payload))
		}
		runes, err := ucs2.Decode(payload)
		if err != nil {
			return UserData{}, fmt.Errorf("%w: %w", ErrInvalidUserData, err)
		}
		ud.Text = string(runes)
	}
	return ud, nil
}
