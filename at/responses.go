package at

import (
	"fmt"
	"strconv"
	"strings"

	"i4.energy/across/gsmradio/pdu"
)

// ResultCode is a final result code in its numeric (ATV0) form.
type ResultCode int

const (
	ResultOK         ResultCode = 0
	ResultConnect    ResultCode = 1
	ResultRing       ResultCode = 2
	ResultNoCarrier  ResultCode = 3
	ResultError      ResultCode = 4
	ResultNoDialtone ResultCode = 6
	ResultBusy       ResultCode = 7
	ResultNoAnswer   ResultCode = 8
	// Extended errors have no numeric form of their own.
	ResultCMEError ResultCode = 100
	ResultCMSError ResultCode = 101
)

var verboseResults = map[string]ResultCode{
	OK:         ResultOK,
	Connect:    ResultConnect,
	ERROR:      ResultError,
	NoCarrier:  ResultNoCarrier,
	NoDialtone: ResultNoDialtone,
	Busy:       ResultBusy,
	NoAnswer:   ResultNoAnswer,
}

// Result is a parsed final result line.
type Result struct {
	Code ResultCode
	// Detail holds the error number of +CME/+CMS errors.
	Detail string
	Line   string
}

// OK reports whether the command succeeded.
func (r Result) OK() bool { return r.Code == ResultOK }

// Err returns nil for OK and an error wrapping ErrResultCode otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrResultCode, r.Line)
}

// ParseResultCode parses a final result line in verbose or numeric form.
func ParseResultCode(line string) (Result, bool) {
	line = strings.TrimSpace(line)
	if c, ok := verboseResults[line]; ok {
		return Result{Code: c, Line: line}, true
	}
	if c, ok := numericResult(line); ok {
		return Result{Code: c, Line: line}, true
	}
	if rest, ok := strings.CutPrefix(line, CmeError); ok {
		return Result{Code: ResultCMEError, Detail: strings.TrimSpace(rest), Line: line}, true
	}
	if rest, ok := strings.CutPrefix(line, CmsError); ok {
		return Result{Code: ResultCMSError, Detail: strings.TrimSpace(rest), Line: line}, true
	}
	return Result{}, false
}

// ReadSMSResponse is the reply to AT+CMGR in PDU mode.
type ReadSMSResponse struct {
	Status  SMSStore
	Alpha   string
	Length  int
	Message *pdu.Message
}

// ListSMSEntry is one message of an AT+CMGL reply.
type ListSMSEntry struct {
	Index   int
	Status  SMSStore
	Alpha   string
	Length  int
	Message *pdu.Message
}

// ListSMSResponse is the reply to AT+CMGL in PDU mode.
type ListSMSResponse struct {
	Entries []ListSMSEntry
}

// reply is an accumulated response split into its information lines and
// final result. Echoed commands and URCs are dropped.
type reply struct {
	lines  []string
	result Result
}

func splitReply(text string) (reply, error) {
	var r reply
	found := false
	for _, l := range Lines(text) {
		if found {
			// Anything after the final result belongs to nobody.
			break
		}
		switch Classify(l) {
		case TypeFinal:
			r.result, _ = ParseResultCode(l)
			found = true
		case TypeURC, TypePrompt:
		default:
			if strings.HasPrefix(l, "AT") {
				continue
			}
			r.lines = append(r.lines, l)
		}
	}
	if !found {
		return reply{}, fmt.Errorf("%w: %q", ErrMissingResult, text)
	}
	if err := r.result.Err(); err != nil {
		return reply{}, err
	}
	return r, nil
}

// tagged returns the fields of the first line carrying tag.
func (r reply) tagged(tag string) ([]string, error) {
	for _, l := range r.lines {
		if rest, ok := strings.CutPrefix(l, tag); ok {
			return splitFields(rest), nil
		}
	}
	return nil, fmt.Errorf("%w: no %s line", ErrMalformedReply, tag)
}

// splitFields splits comma separated values, honouring double quotes. Quotes
// are removed from the returned fields.
func splitFields(s string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	for _, c := range strings.TrimSpace(s) {
		switch {
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}

func atoiField(fields []string, i int, name string) (int, error) {
	if i >= len(fields) {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedReply, name)
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedReply, name, fields[i])
	}
	return n, nil
}

// parseStatusFields reads "<stat>,[<alpha>],<length>".
func parseStatusFields(fields []string) (SMSStore, string, int, error) {
	stat, err := atoiField(fields, 0, "status")
	if err != nil {
		return 0, "", 0, err
	}
	if stat < int(StoreReceivedUnread) || stat > int(StoreStoredSent) {
		return 0, "", 0, fmt.Errorf("%w: status %d", ErrMalformedReply, stat)
	}
	alpha := ""
	if len(fields) > 2 {
		alpha = fields[1]
	}
	length, err := atoiField(fields, len(fields)-1, "length")
	if err != nil {
		return 0, "", 0, err
	}
	return SMSStore(stat), alpha, length, nil
}

// ParseReadSMS parses "+CMGR: <stat>,<alpha>,<length>", the PDU line and
// the final result.
func ParseReadSMS(text string) (ReadSMSResponse, error) {
	r, err := splitReply(text)
	if err != nil {
		return ReadSMSResponse{}, err
	}
	for i, l := range r.lines {
		rest, ok := strings.CutPrefix(l, TagReadSMS)
		if !ok {
			continue
		}
		if i+1 >= len(r.lines) {
			return ReadSMSResponse{}, fmt.Errorf("%w: missing PDU after %s", ErrMalformedReply, TagReadSMS)
		}
		status, alpha, length, err := parseStatusFields(splitFields(rest))
		if err != nil {
			return ReadSMSResponse{}, err
		}
		m, err := pdu.Decode(r.lines[i+1])
		if err != nil {
			return ReadSMSResponse{}, err
		}
		return ReadSMSResponse{Status: status, Alpha: alpha, Length: length, Message: m}, nil
	}
	return ReadSMSResponse{}, fmt.Errorf("%w: no %s line", ErrMalformedReply, TagReadSMS)
}

// ParseListSMS parses repeated "+CMGL: <index>,<stat>,<alpha>,<length>" and
// PDU line pairs terminated by a result code. A non-OK result or any PDU
// that fails to decode fails the whole listing.
func ParseListSMS(text string) (ListSMSResponse, error) {
	r, err := splitReply(text)
	if err != nil {
		return ListSMSResponse{}, err
	}

	var resp ListSMSResponse
	for i := 0; i < len(r.lines); i++ {
		rest, ok := strings.CutPrefix(r.lines[i], TagListSMS)
		if !ok {
			return ListSMSResponse{}, fmt.Errorf("%w: unexpected line %q", ErrMalformedReply, r.lines[i])
		}
		if i+1 >= len(r.lines) {
			return ListSMSResponse{}, fmt.Errorf("%w: missing PDU after %q", ErrMalformedReply, r.lines[i])
		}
		fields := splitFields(rest)
		index, err := atoiField(fields, 0, "index")
		if err != nil {
			return ListSMSResponse{}, err
		}
		status, alpha, length, err := parseStatusFields(fields[1:])
		if err != nil {
			return ListSMSResponse{}, err
		}
		i++
		m, err := pdu.Decode(r.lines[i])
		if err != nil {
			return ListSMSResponse{}, fmt.Errorf("message %d: %w", index, err)
		}
		resp.Entries = append(resp.Entries, ListSMSEntry{
			Index:   index,
			Status:  status,
			Alpha:   alpha,
			Length:  length,
			Message: m,
		})
	}
	return resp, nil
}

// ParseOK checks that a reply ended with OK.
func ParseOK(text string) error {
	_, err := splitReply(text)
	return err
}

// ParseSendSMS returns the message reference from "+CMGS: <mr>".
func ParseSendSMS(text string) (int, error) {
	r, err := splitReply(text)
	if err != nil {
		return 0, err
	}
	fields, err := r.tagged(TagSendSMS)
	if err != nil {
		return 0, err
	}
	return atoiField(fields, 0, "message reference")
}

// SignalQuality is the reply to AT+CSQ.
type SignalQuality struct {
	RSSI int
	BER  int
}

// DBm converts RSSI to dBm. It reports false when the modem does not know
// the signal strength.
func (s SignalQuality) DBm() (int, bool) {
	if s.RSSI < 0 || s.RSSI > 31 {
		return 0, false
	}
	return -113 + 2*s.RSSI, true
}

// ParseSignalQuality parses "+CSQ: <rssi>,<ber>".
func ParseSignalQuality(text string) (SignalQuality, error) {
	r, err := splitReply(text)
	if err != nil {
		return SignalQuality{}, err
	}
	fields, err := r.tagged(TagSignal)
	if err != nil {
		return SignalQuality{}, err
	}
	rssi, err := atoiField(fields, 0, "rssi")
	if err != nil {
		return SignalQuality{}, err
	}
	ber, err := atoiField(fields, 1, "ber")
	if err != nil {
		return SignalQuality{}, err
	}
	return SignalQuality{RSSI: rssi, BER: ber}, nil
}

// Operator is the reply to AT+COPS?.
type Operator struct {
	Mode   int
	Format int
	Name   string
	// AccessTechnology is -1 when the modem does not report it.
	AccessTechnology int
}

// ParseOperator parses "+COPS: <mode>[,<format>,<oper>[,<act>]]".
func ParseOperator(text string) (Operator, error) {
	r, err := splitReply(text)
	if err != nil {
		return Operator{}, err
	}
	fields, err := r.tagged(TagOperator)
	if err != nil {
		return Operator{}, err
	}
	op := Operator{AccessTechnology: -1}
	if op.Mode, err = atoiField(fields, 0, "mode"); err != nil {
		return Operator{}, err
	}
	if len(fields) < 3 {
		return op, nil
	}
	if op.Format, err = atoiField(fields, 1, "format"); err != nil {
		return Operator{}, err
	}
	op.Name = fields[2]
	if len(fields) > 3 {
		if op.AccessTechnology, err = atoiField(fields, 3, "access technology"); err != nil {
			return Operator{}, err
		}
	}
	return op, nil
}

// ParseServiceCenter parses "+CSCA: <sca>,<tosca>".
func ParseServiceCenter(text string) (pdu.Address, error) {
	r, err := splitReply(text)
	if err != nil {
		return pdu.Address{}, err
	}
	fields, err := r.tagged(TagServiceCenter)
	if err != nil {
		return pdu.Address{}, err
	}
	addr, err := pdu.ParseAddress(fields[0])
	if err != nil {
		return pdu.Address{}, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}
	if len(fields) > 1 && fields[1] == "145" {
		addr.Format = pdu.FormatInternational
	}
	return addr, nil
}

// NetworkMode is the reply to AT+CNSMOD?.
type NetworkMode struct {
	Reporting int
	Mode      int
}

var networkModeNames = map[int]string{
	0: "no service",
	1: "GSM",
	2: "GPRS",
	3: "EGPRS",
	4: "WCDMA",
	5: "HSDPA",
	6: "HSUPA",
	7: "HSPA",
	8: "LTE",
}

func (n NetworkMode) String() string {
	if s, ok := networkModeNames[n.Mode]; ok {
		return s
	}
	return fmt.Sprintf("mode %d", n.Mode)
}

// ParseNetworkSystemMode parses "+CNSMOD: <n>,<stat>".
func ParseNetworkSystemMode(text string) (NetworkMode, error) {
	r, err := splitReply(text)
	if err != nil {
		return NetworkMode{}, err
	}
	fields, err := r.tagged(TagSystemMode)
	if err != nil {
		return NetworkMode{}, err
	}
	var nm NetworkMode
	if nm.Reporting, err = atoiField(fields, 0, "reporting"); err != nil {
		return NetworkMode{}, err
	}
	if nm.Mode, err = atoiField(fields, 1, "mode"); err != nil {
		return NetworkMode{}, err
	}
	return nm, nil
}
