// Package modem owns the serial link to a GSM modem and frames the byte
// stream into command/response pairs.
package modem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"i4.energy/across/gsmradio/at"
)

// Worker writes queued AT commands to the modem one at a time and returns
// each framed response to the command's reply target.
//
// The modem has no delimiter that marks the end of a multi-line reply, so a
// response is considered complete once a read times out after text arrived.
// Only one command is in flight at any time; queued commands wait until the
// current one is answered, abandoned, or has expired.
type Worker struct {
	// transport provides the physical connection to the modem
	transport Transport
	lines     *lineReader
	config    Config
	logger    *slog.Logger

	// queue holds submitted envelopes until the loop is idle
	queue *at.Queue
	// done is closed when Run returns
	done chan struct{}

	framer  framer
	running atomic.Bool
	closed  atomic.Bool
}

// New dials the modem and prepares a Worker. No goroutine is started; the
// caller runs Run. A dial failure is returned as is.
func New(ctx context.Context, config Config) (*Worker, error) {
	if config.Dialer == nil {
		return nil, ErrNoDialer
	}
	config.setDefaults()

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial modem: %w", err)
	}
	if s, ok := transport.(readTimeoutSetter); ok {
		if err := s.SetReadTimeout(config.ReadTimeout); err != nil {
			transport.Close()
			return nil, fmt.Errorf("set read timeout: %w", err)
		}
	}

	return &Worker{
		transport: transport,
		lines:     newLineReader(transport, config.MaxLineLength),
		config:    config,
		logger:    config.Logger,
		queue:     at.NewQueue(config.QueueSize),
		done:      make(chan struct{}),
	}, nil
}

// Commands returns the queue the Pipeline submits to. Sends are accepted
// without waiting for the modem while Run is active. Closing it stops Run
// once the queued commands have been taken.
func (w *Worker) Commands() chan<- at.Envelope {
	return w.queue.In()
}

// Done is closed once Run has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Pipeline returns a Pipeline feeding this worker.
func (w *Worker) Pipeline() *at.Pipeline {
	return at.NewPipeline(w.queue.In(), w.done)
}

// Run is the worker loop. It is the only goroutine touching the transport
// and must be called exactly once.
//
// Each iteration takes a queued command when idle, then reads one line.
// Run returns when ctx is cancelled, the command queue is closed, or the
// transport reports that it is closed. Other I/O errors are logged and the
// command in flight is abandoned without a reply.
func (w *Worker) Run(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(w.done)
	go w.queue.Forward(w.done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if w.framer.idle() {
			select {
			case env, ok := <-w.queue.Out():
				if !ok {
					w.logger.Info("Command queue closed, stopping worker")
					return nil
				}
				w.write(env)
			default:
			}
		}

		line, err := w.lines.ReadLine()
		switch {
		case err == nil:
			w.framer.line(line)

		case errors.Is(err, errReadTimeout):
			resp, ok := w.framer.quiet()
			if ok {
				w.deliver(resp)
			} else if w.framer.idle() {
				w.pause(ctx)
			}

		case isClosed(err):
			if env, had := w.framer.abandon(eventFault); had {
				w.logger.Warn("Transport closed with command in flight", "command", env)
			}
			return fmt.Errorf("read: %w", err)

		default:
			w.logger.Warn("Read from modem failed", "error", err)
			if env, had := w.framer.abandon(eventFault); had {
				w.logger.Warn("Abandoned command after I/O error", "command", env)
			}
		}

		if w.framer.expired(time.Now(), w.config.ResponseTimeout) {
			env, _ := w.framer.abandon(eventExpire)
			w.logger.Warn("Modem did not answer, abandoning command", "command", env, "timeout", w.config.ResponseTimeout)
		}
	}
}

func (w *Worker) write(env at.Envelope) {
	if err := w.framer.submit(env, time.Now()); err != nil {
		w.logger.Error("Dropping command", "command", env, "error", err)
		return
	}
	w.logger.Debug("Writing command", "command", env)
	if _, err := w.transport.Write(env.Render()); err != nil {
		w.logger.Warn("Write to modem failed", "command", env, "error", err)
		w.framer.abandon(eventFault)
	}
}

// deliver hands a framed response to its reply target. A command with a
// follow-up has it written straight away so nothing else is sent in
// between.
func (w *Worker) deliver(resp response) {
	if !resp.hasCommand {
		w.logger.Info("Unsolicited message from modem", "text", resp.text)
		return
	}

	env := resp.command
	if reply := env.ReplyTo(); reply != nil {
		select {
		case reply <- at.Reply{Kind: env.Kind(), Text: resp.text}:
		default:
			w.logger.Warn("Reply target not ready, dropping response", "command", env)
		}
	} else {
		w.logger.Debug("Response without reply target", "command", env, "text", resp.text)
	}

	if next, ok := env.Next(); ok {
		w.write(next)
	}
}

func (w *Worker) pause(ctx context.Context) {
	t := time.NewTimer(w.config.PollInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Close releases the transport. Run returns on its next read.
func (w *Worker) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	return w.transport.Close()
}
