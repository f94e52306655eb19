// Package sms keeps a cache of received text messages and sends new ones
// through the modem command pipeline.
package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf16"

	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
)

// ContentLimit is the exclusive upper bound on the UTF-16 length of
// outgoing content.
const ContentLimit = pdu.MaxUCS2Octets / 2

type getRequest struct {
	reply chan<- []Message
}

type sendRequest struct {
	dest   pdu.Address
	sub    pdu.Submission
	result chan<- sendOutcome
}

type sendOutcome struct {
	result SendResult
	err    error
}

type pendingSend struct {
	req    sendRequest
	reply  chan at.Reply
	issued time.Time
}

type pendingPoll struct {
	reply  chan at.Reply
	issued time.Time
}

// Manager polls the modem for stored messages and services client
// requests. All state is owned by the Run goroutine; clients talk to it over
// channels.
type Manager struct {
	pipeline Pipeline
	config   Config
	logger   *slog.Logger

	gets  chan getRequest
	sends chan sendRequest
	done  chan struct{}

	running atomic.Bool

	messages []Message
	poll     *pendingPoll
	lastPoll time.Time
	pending  []pendingSend
}

// NewManager creates a manager for p. Zero config fields take their
// defaults.
func NewManager(p Pipeline, config Config) *Manager {
	config.setDefaults()
	return &Manager{
		pipeline: p,
		config:   config,
		logger:   config.Logger,
		gets:     make(chan getRequest),
		sends:    make(chan sendRequest),
		done:     make(chan struct{}),
	}
}

// Client returns a handle for talking to the manager.
func (m *Manager) Client() Client {
	return Client{gets: m.gets, sends: m.sends, done: m.done}
}

// Done is closed once Run has returned.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Run is the manager loop. It returns when ctx is cancelled or the pipeline
// reports that the modem worker has stopped.
func (m *Manager) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(m.done)

	ticker := time.NewTicker(m.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.failPending(ErrManagerStopped)
			return ctx.Err()
		case now := <-ticker.C:
			if err := m.tick(now); err != nil {
				m.failPending(ErrManagerStopped)
				return err
			}
		}
	}
}

func (m *Manager) tick(now time.Time) error {
	m.serviceRequests(now)

	if m.poll == nil {
		if m.lastPoll.IsZero() || now.Sub(m.lastPoll) >= m.config.PollInterval {
			if err := m.startPoll(now); err != nil {
				return err
			}
		}
	} else {
		m.checkPoll(now)
	}

	m.checkSends(now)
	return nil
}

func (m *Manager) serviceRequests(now time.Time) {
	for {
		select {
		case req := <-m.gets:
			req.reply <- append([]Message(nil), m.messages...)
		case req := <-m.sends:
			m.startSend(req, now)
		default:
			return
		}
	}
}

func (m *Manager) startPoll(now time.Time) error {
	m.lastPoll = now
	reply := make(chan at.Reply, 1)
	if err := m.pipeline.ListSMS(at.StoreAll, reply); err != nil {
		if errors.Is(err, at.ErrWorkerStopped) {
			return fmt.Errorf("list messages: %w", err)
		}
		m.logger.Warn("Failed to request message listing", "error", err)
		return nil
	}
	m.poll = &pendingPoll{reply: reply, issued: now}
	return nil
}

func (m *Manager) checkPoll(now time.Time) {
	select {
	case r := <-m.poll.reply:
		m.poll = nil
		m.refresh(r)
	default:
		if now.Sub(m.poll.issued) > m.config.ReplyTimeout {
			m.logger.Warn("Message listing not answered", "timeout", m.config.ReplyTimeout)
			m.poll = nil
		}
	}
}

// refresh replaces the cache with a successful listing. A failed listing
// leaves the previous cache in place.
func (m *Manager) refresh(r at.Reply) {
	resp, err := at.ParseListSMS(r.Text)
	if err != nil {
		m.logger.Warn("Failed to parse message listing", "error", err)
		return
	}
	m.messages = assemble(resp.Entries, m.logger)
	m.logger.Debug("Message cache refreshed", "stored", len(resp.Entries), "messages", len(m.messages))
}

func (m *Manager) startSend(req sendRequest, now time.Time) {
	reply := make(chan at.Reply, 1)
	if err := m.pipeline.SendSMS(req.sub, reply); err != nil {
		req.result <- sendOutcome{err: err}
		return
	}
	m.pending = append(m.pending, pendingSend{req: req, reply: reply, issued: now})
}

func (m *Manager) checkSends(now time.Time) {
	kept := m.pending[:0]
	for _, p := range m.pending {
		select {
		case r := <-p.reply:
			ref, err := at.ParseSendSMS(r.Text)
			if err != nil {
				m.logger.Warn("Message rejected by modem", "destination", p.req.dest, "error", err)
				p.req.result <- sendOutcome{err: err}
				continue
			}
			m.logger.Info("Message sent", "destination", p.req.dest, "reference", ref)
			p.req.result <- sendOutcome{result: SendResult{Reference: ref}}
		default:
			if now.Sub(p.issued) > m.config.ReplyTimeout {
				m.logger.Warn("Send not acknowledged", "destination", p.req.dest, "timeout", m.config.ReplyTimeout)
				p.req.result <- sendOutcome{err: ErrSendTimeout}
				continue
			}
			kept = append(kept, p)
		}
	}
	m.pending = kept
}

func (m *Manager) failPending(err error) {
	for _, p := range m.pending {
		p.req.result <- sendOutcome{err: err}
	}
	m.pending = nil
}

// Client is a copyable handle to a Manager. It is safe for concurrent use.
type Client struct {
	gets  chan<- getRequest
	sends chan<- sendRequest
	done  <-chan struct{}
}

// GetMessages returns a copy of the cached messages, oldest first.
func (c Client) GetMessages(ctx context.Context) ([]Message, error) {
	reply := make(chan []Message, 1)
	select {
	case c.gets <- getRequest{reply: reply}:
	case <-c.done:
		return nil, ErrManagerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case msgs := <-reply:
		return msgs, nil
	case <-c.done:
		return nil, ErrManagerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SendMessage sends content to dest as a single UCS-2 message and waits for
// the modem to acknowledge it. Content of ContentLimit or more UTF-16 units
// is rejected with ErrMessageTooLong before anything reaches the modem.
func (c Client) SendMessage(ctx context.Context, dest, content string) (SendResult, error) {
	if n := len(utf16.Encode([]rune(content))); n >= ContentLimit {
		return SendResult{}, fmt.Errorf("%w: %d UTF-16 units, limit is %d", ErrMessageTooLong, n, ContentLimit-1)
	}
	addr, err := pdu.ParseAddress(dest)
	if err != nil {
		return SendResult{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	sub, err := pdu.EncodeSubmit(addr, content)
	if err != nil {
		return SendResult{}, err
	}

	// Buffered so the loop never blocks on a caller that gave up.
	result := make(chan sendOutcome, 1)
	select {
	case c.sends <- sendRequest{dest: addr, sub: sub, result: result}:
	case <-c.done:
		return SendResult{}, ErrManagerStopped
	case <-ctx.Done():
		return SendResult{}, ctx.Err()
	}

	select {
	case out := <-result:
		return out.result, out.err
	case <-c.done:
		// The loop fails pending sends before closing done.
		select {
		case out := <-result:
			return out.result, out.err
		default:
			return SendResult{}, ErrManagerStopped
		}
	case <-ctx.Done():
		return SendResult{}, ctx.Err()
	}
}
