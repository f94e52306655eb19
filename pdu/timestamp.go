package pdu

import (
	"fmt"
	"time"
)

const timestampOctets = 7

// decodeTimestamp decodes a service-centre timestamp: six swapped-BCD
// octets YYMMDDhhmmss followed by a timezone octet.
//
// The timezone octet is read as written in the hex string: its first digit
// is the tens digit with bit 3 as the sign, its second digit the units. The
// result is an offset in quarter hours. The returned time is in UTC.
func decodeTimestamp(b []byte) (time.Time, error) {
	var f [6]int
	for i := range f {
		lo, hi := b[i]&0x0F, b[i]>>4
		if lo > 9 || hi > 9 {
			return time.Time{}, fmt.Errorf("%w: octet %d is 0x%02X", ErrInvalidDigit, i, b[i])
		}
		f[i] = int(lo)*10 + int(hi)
	}
	year, month, day, hour, minute, second := 2000+f[0], f[1], f[2], f[3], f[4], f[5]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: %02d-%02d-%02d %02d:%02d:%02d", ErrInvalidTimestamp, f[0], month, day, hour, minute, second)
	}

	quarters, err := decodeZone(b[6])
	if err != nil {
		return time.Time{}, err
	}
	zone := time.FixedZone("", quarters*15*60)

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, zone)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for month %d", ErrInvalidTimestamp, day, month)
	}
	return t.UTC(), nil
}

// decodeZone returns the signed timezone offset in quarter hours.
func decodeZone(o byte) (int, error) {
	tens, units := o>>4, o&0x0F
	if units > 9 {
		return 0, fmt.Errorf("%w: timezone 0x%02X", ErrInvalidDigit, o)
	}
	quarters := 10*int(tens&0x07) + int(units)
	if tens&0x08 != 0 {
		quarters = -quarters
	}
	return quarters, nil
}
