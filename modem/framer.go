package modem

import (
	"fmt"
	"strings"
	"time"

	"i4.energy/across/gsmradio/at"
)

type state int

const (
	stateIdle state = iota
	stateAwaitingResponse
)

func (s state) String() string {
	if s == stateIdle {
		return "idle"
	}
	return "awaiting-response"
}

type event int

const (
	// eventSubmit: a command was written to the modem.
	eventSubmit event = iota
	// eventLine: a line was read.
	eventLine
	// eventQuiet: a read timed out with nothing accumulated.
	eventQuiet
	// eventComplete: a read timed out after text was accumulated.
	eventComplete
	// eventFault: a read or write failed.
	eventFault
	// eventExpire: the modem did not answer within the response timeout.
	eventExpire
)

var eventNames = [...]string{"submit", "line", "quiet", "complete", "fault", "expire"}

func (e event) String() string { return eventNames[e] }

// transitions is the complete framing contract. Pairs that are missing are
// programming errors; a second submit while awaiting a response is the one
// that matters.
var transitions = map[state]map[event]state{
	stateIdle: {
		eventSubmit:   stateAwaitingResponse,
		eventLine:     stateIdle,
		eventQuiet:    stateIdle,
		eventComplete: stateIdle,
		eventFault:    stateIdle,
	},
	stateAwaitingResponse: {
		eventLine:     stateAwaitingResponse,
		eventQuiet:    stateAwaitingResponse,
		eventComplete: stateIdle,
		eventFault:    stateIdle,
		eventExpire:   stateIdle,
	},
}

// response is a framed reply. hasCommand is false for unsolicited output.
type response struct {
	command    at.Envelope
	hasCommand bool
	text       string
}

// framer turns a stream of lines and quiet reads into responses, tracking
// the one command in flight.
type framer struct {
	state   state
	pending at.Envelope
	since   time.Time
	acc     strings.Builder
}

func (f *framer) fire(ev event) error {
	next, ok := transitions[f.state][ev]
	if !ok {
		return fmt.Errorf("%w: %s in state %s", errInvalidTransition, ev, f.state)
	}
	f.state = next
	return nil
}

func (f *framer) idle() bool { return f.state == stateIdle }

// submit records env as the command in flight.
func (f *framer) submit(env at.Envelope, now time.Time) error {
	if err := f.fire(eventSubmit); err != nil {
		return err
	}
	f.pending = env
	f.since = now
	return nil
}

// line accumulates a line. Lines starting with LF continue the current
// reply, anything else starts a fresh one. Empty lines are ignored.
func (f *framer) line(l string) {
	if l == "" {
		return
	}
	_ = f.fire(eventLine)
	if !at.IsContinuation(l) {
		f.acc.Reset()
	}
	f.acc.WriteString(l)
}

// quiet handles a read timeout. It returns the framed response when text
// had been accumulated.
func (f *framer) quiet() (response, bool) {
	if f.acc.Len() == 0 {
		_ = f.fire(eventQuiet)
		return response{}, false
	}
	resp := response{text: f.acc.String()}
	if f.state == stateAwaitingResponse {
		resp.command, resp.hasCommand = f.pending, true
	}
	_ = f.fire(eventComplete)
	f.reset()
	return resp, true
}

// expired reports whether the command in flight has waited longer than
// timeout.
func (f *framer) expired(now time.Time, timeout time.Duration) bool {
	return f.state == stateAwaitingResponse && now.Sub(f.since) > timeout
}

// abandon drops the command in flight, if any, without a reply. It is used
// for I/O faults and expired commands.
func (f *framer) abandon(ev event) (at.Envelope, bool) {
	env, had := f.pending, f.state == stateAwaitingResponse
	_ = f.fire(ev)
	f.reset()
	return env, had
}

func (f *framer) reset() {
	f.pending = at.Envelope{}
	f.since = time.Time{}
	f.acc.Reset()
}
