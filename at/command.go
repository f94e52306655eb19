package at

import "fmt"

// CommandKind identifies what a reply corresponds to.
type CommandKind int

const (
	KindAttention CommandKind = iota
	KindHangup
	KindDial
	KindSignalQuality
	KindOperatorSelect
	KindNetworkSystemMode
	KindReadSMS
	KindListSMS
	KindSendSMS
	KindGetSMSC
)

var kindNames = [...]string{
	KindAttention:         "attention",
	KindHangup:            "hangup",
	KindDial:              "dial",
	KindSignalQuality:     "signal-quality",
	KindOperatorSelect:    "operator-select",
	KindNetworkSystemMode: "network-system-mode",
	KindReadSMS:           "read-sms",
	KindListSMS:           "list-sms",
	KindSendSMS:           "send-sms",
	KindGetSMSC:           "get-smsc",
}

func (k CommandKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Reply is the complete textual response to a command.
type Reply struct {
	Kind CommandKind
	Text string
}

// Envelope is a single command as handed to the modem worker.
//
// An Envelope is immutable. The worker writes it once and delivers at most
// one Reply to its reply target. A follow-up envelope, if set, is written
// as soon as the first one is answered, before any other queued command.
type Envelope struct {
	bytes    []byte
	appendCR bool
	kind     CommandKind
	reply    chan<- Reply
	next     *Envelope
}

// NewEnvelope creates an envelope for the given command text. A nil reply
// target means the response is only logged.
func NewEnvelope(kind CommandKind, text string, appendCR bool, reply chan<- Reply) Envelope {
	return Envelope{
		bytes:    []byte(text),
		appendCR: appendCR,
		kind:     kind,
		reply:    reply,
	}
}

// Then returns a copy of e that is followed by next.
func (e Envelope) Then(next Envelope) Envelope {
	e.next = &next
	return e
}

// Kind returns the command kind.
func (e Envelope) Kind() CommandKind { return e.kind }

// ReplyTo returns the reply target, which may be nil.
func (e Envelope) ReplyTo() chan<- Reply { return e.reply }

// Next returns the follow-up envelope.
func (e Envelope) Next() (Envelope, bool) {
	if e.next == nil {
		return Envelope{}, false
	}
	return *e.next, true
}

// Render returns the bytes to write to the modem.
func (e Envelope) Render() []byte {
	out := make([]byte, 0, len(e.bytes)+1)
	out = append(out, e.bytes...)
	if e.appendCR {
		out = append(out, CR...)
	}
	return out
}

func (e Envelope) String() string {
	return fmt.Sprintf("%s %q", e.kind, e.bytes)
}
