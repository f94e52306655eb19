package modem

import (
	"i4.energy/across/gsmradio/at"
)

// lineReader reads carriage-return terminated lines from a transport whose
// reads time out. Output that stops without a terminator, such as the SMS
// prompt, is returned as a line once the transport goes quiet.
type lineReader struct {
	t       Transport
	buf     []byte
	pending []byte
	max     int
}

func newLineReader(t Transport, max int) *lineReader {
	return &lineReader{t: t, buf: make([]byte, 512), max: max}
}

// ReadLine returns the next line without its CR. It returns errReadTimeout
// when the transport was quiet and nothing is pending.
func (l *lineReader) ReadLine() (string, error) {
	for {
		if advance, token, _ := at.ScanCR(l.pending, false); advance > 0 {
			line := string(token)
			l.pending = l.pending[advance:]
			return line, nil
		}
		if len(l.pending) > l.max {
			l.pending = l.pending[:0]
			return "", ErrLineTooLong
		}

		n, err := l.t.Read(l.buf)
		l.pending = append(l.pending, l.buf[:n]...)
		if err != nil && !isTimeout(err) {
			// A partial line cut short by a fault is garbage.
			l.pending = l.pending[:0]
			return "", err
		}
		if n > 0 {
			continue
		}

		if advance, token, _ := at.ScanCR(l.pending, true); advance > 0 {
			line := string(token)
			l.pending = l.pending[advance:]
			return line, nil
		}
		return "", errReadTimeout
	}
}
