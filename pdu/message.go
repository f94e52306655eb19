// Package pdu encodes and decodes SMS protocol data units in the hex form
// exchanged with GSM modems in PDU mode (AT+CMGF=0).
package pdu

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// MessageType is the TP-MTI field of the first octet.
type MessageType uint8

const (
	TypeDeliver MessageType = iota
	TypeSubmit
	TypeStatusReport
	TypeReserved
)

func (t MessageType) String() string {
	switch t {
	case TypeDeliver:
		return "deliver"
	case TypeSubmit:
		return "submit"
	case TypeStatusReport:
		return "status-report"
	default:
		return "reserved"
	}
}

// Validity period formats carried in bits 3-4 of a SUBMIT first octet.
const (
	ValidityNone     = 0
	ValidityEnhanced = 1
	ValidityRelative = 2
	ValidityAbsolute = 3
)

// CommandInfo holds the flags of the first octet of a TPDU.
type CommandInfo struct {
	Type MessageType
	// MoreMessages is bit 2 (TP-MMS on delivery, TP-RD on submission).
	MoreMessages bool
	// ValidityFormat is only meaningful for SMS-SUBMIT.
	ValidityFormat uint8
	StatusReport   bool
	HasHeader      bool
	ReplyPath      bool
}

func parseCommandInfo(o byte) CommandInfo {
	return CommandInfo{
		Type:           MessageType(o & 0x03),
		MoreMessages:   o&0x04 != 0,
		ValidityFormat: (o >> 3) & 0x03,
		StatusReport:   o&0x20 != 0,
		HasHeader:      o&0x40 != 0,
		ReplyPath:      o&0x80 != 0,
	}
}

// Message is a decoded SMS-DELIVER or SMS-SUBMIT.
//
// Sender and Timestamp are set for deliveries. Reference, Recipient and
// Validity are set for submissions read back from modem storage.
type Message struct {
	ServiceCenter Address
	Info          CommandInfo
	Sender        Address
	Timestamp     time.Time
	Reference     uint8
	Recipient     Address
	Validity      []byte
	ProtocolID    uint8
	UserData      UserData
}

// Decode parses a PDU hex string including its service centre prefix.
// Any error aborts the whole parse.
func Decode(s string) (*Message, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHex, err)
	}
	r := &reader{buf: raw}

	m := &Message{}
	if m.ServiceCenter, err = readServiceCenter(r); err != nil {
		return nil, err
	}

	fo, err := r.octet("first octet")
	if err != nil {
		return nil, err
	}
	m.Info = parseCommandInfo(fo)

	switch m.Info.Type {
	case TypeDeliver:
		err = decodeDeliver(r, m)
	case TypeSubmit:
		err = decodeSubmit(r, m)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedMessageType, m.Info.Type)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decodeDeliver(r *reader, m *Message) error {
	var err error
	if m.Sender, err = readAddress(r, "sender"); err != nil {
		return err
	}
	enc, err := readProtocolAndCoding(r, m)
	if err != nil {
		return err
	}
	ts, err := r.octets("timestamp", timestampOctets)
	if err != nil {
		return err
	}
	if m.Timestamp, err = decodeTimestamp(ts); err != nil {
		return err
	}
	m.UserData, err = readUserData(r, enc, m.Info.HasHeader)
	return err
}

func decodeSubmit(r *reader, m *Message) error {
	var err error
	if m.Reference, err = r.octet("message reference"); err != nil {
		return err
	}
	if m.Recipient, err = readAddress(r, "recipient"); err != nil {
		return err
	}
	enc, err := readProtocolAndCoding(r, m)
	if err != nil {
		return err
	}
	switch m.Info.ValidityFormat {
	case ValidityRelative:
		m.Validity, err = r.octets("validity period", 1)
	case ValidityEnhanced, ValidityAbsolute:
		m.Validity, err = r.octets("validity period", 7)
	}
	if err != nil {
		return err
	}
	m.UserData, err = readUserData(r, enc, m.Info.HasHeader)
	return err
}

func readProtocolAndCoding(r *reader, m *Message) (Encoding, error) {
	var err error
	if m.ProtocolID, err = r.octet("protocol id"); err != nil {
		return EncodingUnknown, err
	}
	dcs, err := r.octet("data coding scheme")
	if err != nil {
		return EncodingUnknown, err
	}
	return encodingForDCS(dcs)
}
