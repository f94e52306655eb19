package at

import (
	"bufio"
	"bytes"
	"strings"
)

// ScanCR is a bufio.SplitFunc that splits modem output on carriage returns.
//
// Unlike bufio.ScanLines the line feed that follows a carriage return is
// kept at the start of the next token. The framing worker relies on that
// leading LF to tell a continuation line from the start of a new reply.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func ScanCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, CR[0]); i >= 0 {
		return i + 1, data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = ScanCR

// IsContinuation reports whether a line read by ScanCR continues the reply
// currently being accumulated.
func IsContinuation(line string) bool {
	return strings.HasPrefix(line, LF)
}

// Lines splits an accumulated reply into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, LF) {
		l = strings.TrimRight(strings.TrimLeft(l, CR), " \r\t")
		if l == "" || l == CtrlZ {
			continue
		}
		out = append(out, l)
	}
	return out
}
