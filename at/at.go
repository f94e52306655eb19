// Package at builds AT command envelopes for the modem worker and parses the
// textual replies the modem sends back.
package at

import (
	"strconv"
	"strings"
)

const (
	// Terminal Control
	CR     = "\r"
	LF     = "\n"
	CtrlZ  = "\x1A"
	Prompt = "> "

	// Response Codes
	OK         = "OK"
	Connect    = "CONNECT"
	Ring       = "RING"
	ERROR      = "ERROR"
	NoCarrier  = "NO CARRIER"
	NoDialtone = "NO DIALTONE"
	Busy       = "BUSY"
	NoAnswer   = "NO ANSWER"
	CmeError   = "+CME ERROR:"
	CmsError   = "+CMS ERROR:"

	// URCs (Unsolicited Result Codes)
	UrcNewMsg        = "+CMTI:"
	UrcMessageReport = "+CDSI:"

	// Information response tags
	TagReadSMS       = "+CMGR:"
	TagListSMS       = "+CMGL:"
	TagSendSMS       = "+CMGS:"
	TagSignal        = "+CSQ:"
	TagOperator      = "+COPS:"
	TagSystemMode    = "+CNSMOD:"
	TagServiceCenter = "+CSCA:"
)

// Commands
const (
	CmdAttention         = "AT"
	CmdHangup            = "ATH"
	CmdDial              = "ATD"
	CmdSignalQuality     = "AT+CSQ?"
	CmdOperatorSelect    = "AT+COPS?"
	CmdNetworkSystemMode = "AT+CNSMOD?"
	CmdReadSMS           = "AT+CMGR="
	CmdListSMS           = "AT+CMGL="
	CmdSendSMS           = "AT+CMGS="
	CmdGetSMSC           = "AT+CSCA?"
)

type ResponseType int

const (
	TypeFinal  ResponseType = iota // OK, ERROR, 0, 4
	TypeURC                        // Asynchronous notifications
	TypeData                       // Intermediate command output (+CSQ: ...)
	TypePrompt                     // SMS input prompt
)

// Classify identifies the nature of one line of modem output. Numeric
// result codes are recognised so modems left in ATV0 mode work as well.
func Classify(line string) ResponseType {
	if line == Prompt || line == strings.TrimSpace(Prompt) {
		return TypePrompt
	}

	// Direct matches for final results
	switch line {
	case OK, ERROR, NoCarrier, NoDialtone, Busy, NoAnswer, Connect:
		return TypeFinal
	}
	if _, ok := numericResult(line); ok {
		return TypeFinal
	}

	// Prefix matches
	switch {
	case strings.HasPrefix(line, CmeError), strings.HasPrefix(line, CmsError):
		return TypeFinal
	case strings.HasPrefix(line, UrcNewMsg), strings.HasPrefix(line, UrcMessageReport), line == Ring:
		return TypeURC
	default:
		return TypeData
	}
}

func numericResult(line string) (ResultCode, bool) {
	if len(line) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	switch c := ResultCode(n); c {
	case ResultOK, ResultConnect, ResultNoCarrier, ResultError, ResultNoDialtone, ResultBusy, ResultNoAnswer:
		return c, true
	}
	return 0, false
}
