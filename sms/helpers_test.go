package sms

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/warthog618/sms/encoding/ucs2"
	"i4.energy/across/gsmradio/at"
)

const (
	alice = "0B915155214365F7" // +15551234567
	bob   = "0B915155214365F8" // +15551234568
)

// part describes one stored SMS-DELIVER for building listings.
type part struct {
	sender string
	// minute past 10:00 on 2026-01-15 UTC
	minute int
	text   string
	// ref, total and seq are only used when total is not zero
	ref, total, seq byte
}

func swapped(n int) string {
	return fmt.Sprintf("%d%d", n%10, n/10)
}

func (p part) hex() string {
	ud := ucs2.Encode([]rune(p.text))
	fo := "04"
	if p.total != 0 {
		fo = "44"
		ud = append([]byte{0x05, 0x00, 0x03, p.ref, p.total, p.seq}, ud...)
	}
	ts := "621051" + "01" + swapped(p.minute) + "00" + "00"
	return "00" + fo + p.sender + "00" + "08" + ts +
		fmt.Sprintf("%02X", len(ud)) + strings.ToUpper(hex.EncodeToString(ud))
}

// listing renders parts as an AT+CMGL reply. extra holds raw PDUs listed
// as stored unsent messages after the parts.
func listing(parts []part, extra ...string) string {
	var b strings.Builder
	b.WriteString("AT+CMGL=4\r")
	for i, p := range parts {
		h := p.hex()
		fmt.Fprintf(&b, "\n+CMGL: %d,1,,%d\n%s", i+1, len(h)/2-1, h)
	}
	for i, h := range extra {
		fmt.Fprintf(&b, "\n+CMGL: %d,2,,%d\n%s", len(parts)+i+1, len(h)/2-1, h)
	}
	b.WriteString("\n\nOK\n")
	return b.String()
}

func entries(t *testing.T, parts ...part) []at.ListSMSEntry {
	t.Helper()
	resp, err := at.ParseListSMS(listing(parts))
	if err != nil {
		t.Fatalf("listing did not parse: %v", err)
	}
	return resp.Entries
}
