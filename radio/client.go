package radio

import (
	"context"
	"time"

	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
	"i4.energy/across/gsmradio/sms"
)

// Client is a handle to a running Radio. It embeds the messaging client and
// adds direct modem queries. The zero value is not usable.
type Client struct {
	sms.Client

	pipeline *at.Pipeline
	done     <-chan struct{}
	timeout  time.Duration
}

// query submits a command and parses its reply. A command the worker
// abandons never gets a reply, so every query is bounded by the client
// timeout.
func query[T any](ctx context.Context, c Client, submit func(chan<- at.Reply) error, parse func(string) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply := make(chan at.Reply, 1)
	if err := submit(reply); err != nil {
		return zero, err
	}

	select {
	case r := <-reply:
		return parse(r.Text)
	case <-c.done:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func parseOK(text string) (struct{}, error) {
	return struct{}{}, at.ParseOK(text)
}

// SignalQuality reads AT+CSQ.
func (c Client) SignalQuality(ctx context.Context) (at.SignalQuality, error) {
	return query(ctx, c, c.pipeline.SignalQuality, at.ParseSignalQuality)
}

// Operator reads AT+COPS.
func (c Client) Operator(ctx context.Context) (at.Operator, error) {
	return query(ctx, c, c.pipeline.OperatorSelect, at.ParseOperator)
}

// NetworkMode reads AT+CNSMOD.
func (c Client) NetworkMode(ctx context.Context) (at.NetworkMode, error) {
	return query(ctx, c, c.pipeline.NetworkSystemMode, at.ParseNetworkSystemMode)
}

// ServiceCenter reads the SMS service centre address.
func (c Client) ServiceCenter(ctx context.Context) (pdu.Address, error) {
	return query(ctx, c, c.pipeline.GetSMSC, at.ParseServiceCenter)
}

// Dial starts a voice call. Only digits, '*', '#' and '+' are accepted.
func (c Client) Dial(ctx context.Context, number string) error {
	_, err := query(ctx, c, func(reply chan<- at.Reply) error {
		return c.pipeline.Dial(number, reply)
	}, parseOK)
	return err
}

// Hangup ends the current call.
func (c Client) Hangup(ctx context.Context) error {
	_, err := query(ctx, c, c.pipeline.Hangup, parseOK)
	return err
}
