package at

import (
	"fmt"
	"regexp"
	"strconv"

	"i4.energy/across/gsmradio/pdu"
)

// SMSStore selects messages by status for AT+CMGL and describes the status
// of a stored message in +CMGR and +CMGL replies.
type SMSStore int

const (
	StoreReceivedUnread SMSStore = iota
	StoreReceivedRead
	StoreStoredUnsent
	StoreStoredSent
	StoreAll
)

func (s SMSStore) String() string {
	switch s {
	case StoreReceivedUnread:
		return "received-unread"
	case StoreReceivedRead:
		return "received-read"
	case StoreStoredUnsent:
		return "stored-unsent"
	case StoreStoredSent:
		return "stored-sent"
	case StoreAll:
		return "all"
	default:
		return fmt.Sprintf("SMSStore(%d)", int(s))
	}
}

var dialPattern = regexp.MustCompile(`^[0-9*#+]+$`)

// Pipeline turns modem operations into envelopes and queues them for the
// worker. It is safe for concurrent use. Fed by a running Queue, a
// submission never waits for the modem to answer earlier commands.
//
// Every operation takes an optional reply target. When it is not nil the
// complete response is delivered there once. Reply targets should have a
// buffer of at least one so the worker never blocks on them.
type Pipeline struct {
	commands chan<- Envelope
	done     <-chan struct{}
}

// NewPipeline returns a Pipeline that submits to commands until done is
// closed.
func NewPipeline(commands chan<- Envelope, done <-chan struct{}) *Pipeline {
	return &Pipeline{commands: commands, done: done}
}

func (p *Pipeline) submit(env Envelope) error {
	select {
	case <-p.done:
		return fmt.Errorf("%w: %s", ErrWorkerStopped, env.Kind())
	default:
	}

	select {
	case p.commands <- env:
		return nil
	case <-p.done:
		return fmt.Errorf("%w: %s", ErrWorkerStopped, env.Kind())
	}
}

// Attention sends the bare AT command.
func (p *Pipeline) Attention(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindAttention, CmdAttention, true, reply))
}

// Hangup ends the current call.
func (p *Pipeline) Hangup(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindHangup, CmdHangup, true, reply))
}

// Dial starts a voice call to number.
func (p *Pipeline) Dial(number string, reply chan<- Reply) error {
	if !dialPattern.MatchString(number) {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	return p.submit(NewEnvelope(KindDial, CmdDial+number+";", true, reply))
}

// SignalQuality queries the received signal strength.
func (p *Pipeline) SignalQuality(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindSignalQuality, CmdSignalQuality, true, reply))
}

// OperatorSelect queries the selected network operator.
func (p *Pipeline) OperatorSelect(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindOperatorSelect, CmdOperatorSelect, true, reply))
}

// NetworkSystemMode queries the radio access technology in use.
func (p *Pipeline) NetworkSystemMode(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindNetworkSystemMode, CmdNetworkSystemMode, true, reply))
}

// ReadSMS reads the message stored at index.
func (p *Pipeline) ReadSMS(index int, reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindReadSMS, CmdReadSMS+strconv.Itoa(index), true, reply))
}

// ListSMS lists stored messages with the given status.
func (p *Pipeline) ListSMS(store SMSStore, reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindListSMS, CmdListSMS+strconv.Itoa(int(store)), true, reply))
}

// SendSMS submits an encoded PDU. The AT+CMGS setup command carries no reply
// target; the PDU body, terminated by Ctrl-Z instead of CR, carries reply.
// Both are queued as one unit so no other command can slip in while the
// modem waits for the body.
func (p *Pipeline) SendSMS(sub pdu.Submission, reply chan<- Reply) error {
	setup := NewEnvelope(KindSendSMS, CmdSendSMS+strconv.Itoa(sub.TPDULength), true, nil)
	body := NewEnvelope(KindSendSMS, sub.Hex+CtrlZ, false, reply)
	return p.submit(setup.Then(body))
}

// GetSMSC queries the service centre address.
func (p *Pipeline) GetSMSC(reply chan<- Reply) error {
	return p.submit(NewEnvelope(KindGetSMSC, CmdGetSMSC, true, reply))
}
