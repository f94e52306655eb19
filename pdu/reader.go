package pdu

import "fmt"

// reader walks the octets of a PDU front to back. It never seeks backwards.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) octet(field string) (byte, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("%w: reading %s at offset %d", ErrShortPDU, field, r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) octets(field string, n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: reading %d octets of %s at offset %d", ErrShortPDU, n, field, r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}
