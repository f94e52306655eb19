package pdu

import (
	"fmt"
	"strings"
)

// defaultAlphabet maps GSM 03.38 default alphabet septets to runes. The
// escape septet 0x1B has no printable form and is rendered as '?'.
var defaultAlphabet = [128]rune{
	'@', '£', '$', '¥', 'è', 'é', 'ù', 'ì', 'ò', 'Ç', '\n', 'Ø', 'ø', '\r', 'Å', 'å',
	'Δ', '_', 'Φ', 'Γ', 'Λ', 'Ω', 'Π', 'Ψ', 'Σ', 'Θ', 'Ξ', '?', 'Æ', 'æ', 'ß', 'É',
	' ', '!', '"', '#', '¤', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'¡', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', 'Ä', 'Ö', 'Ñ', 'Ü', '§',
	'¿', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'ä', 'ö', 'ñ', 'ü', 'à',
}

const escapeSeptet = 0x1B

var reverseAlphabet = func() map[rune]byte {
	m := make(map[rune]byte, len(defaultAlphabet))
	for i, r := range defaultAlphabet {
		if i == escapeSeptet {
			continue
		}
		if _, ok := m[r]; !ok {
			m[r] = byte(i)
		}
	}
	return m
}()

// septetMasks selects the low bits of an octet that belong to the septet
// being completed at each step of the 8-step cycle.
var septetMasks = [7]byte{0x7F, 0x3F, 0x1F, 0x0F, 0x07, 0x03, 0x01}

// UnpackSeptets unpacks count septets from packed octets.
//
// Octets are consumed in a repeating 8-step cycle. Steps 0-6 combine the bits
// carried over from the previous octet with the masked low bits of the next
// one and carry its unused high bits forward. Step 7 emits the carry alone
// without consuming an octet. Decoding stops after count septets, so trailing
// fill bits are never emitted. When octets run out first, only the septets
// they hold are returned.
func UnpackSeptets(octets []byte, count int) []byte {
	out := make([]byte, 0, count)
	var carry byte
	next := 0
	for i := 0; i < count; i++ {
		step := i % 8
		if step == 7 {
			out = append(out, carry)
			carry = 0
			continue
		}
		if next >= len(octets) {
			break
		}
		o := octets[next]
		next++
		out = append(out, (o&septetMasks[step])<<step|carry)
		carry = (o &^ septetMasks[step]) >> (7 - step)
	}
	return out
}

// PackSeptets is the inverse of UnpackSeptets.
func PackSeptets(septets []byte) []byte {
	out := make([]byte, 0, (len(septets)*7+7)/8)
	var acc uint16
	bits := 0
	for _, s := range septets {
		acc |= uint16(s&0x7F) << bits
		bits += 7
		for bits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			bits -= 8
		}
	}
	if bits > 0 {
		out = append(out, byte(acc))
	}
	return out
}

// packedLen is the number of octets holding count septets.
func packedLen(count int) int {
	return (count*7 + 7) / 8
}

func septetsToText(septets []byte) string {
	var sb strings.Builder
	sb.Grow(len(septets))
	for _, s := range septets {
		sb.WriteRune(defaultAlphabet[s&0x7F])
	}
	return sb.String()
}

// TextToSeptets maps text onto the default alphabet. Characters outside the
// alphabet are rejected.
func TextToSeptets(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		s, ok := reverseAlphabet[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not in the GSM default alphabet", ErrInvalidUserData, r)
		}
		out = append(out, s)
	}
	return out, nil
}
