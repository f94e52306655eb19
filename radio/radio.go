// Package radio starts the modem worker and the messaging manager and hands
// out a client for both.
package radio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/modem"
	"i4.energy/across/gsmradio/sms"
)

// Radio owns the worker and manager goroutines.
type Radio struct {
	worker   *modem.Worker
	manager  *sms.Manager
	pipeline *at.Pipeline
	config   Config
	logger   *slog.Logger

	cancel context.CancelFunc
	group  *errgroup.Group
	closed atomic.Bool
}

// New dials the modem, starts the worker and checks that the modem answers
// AT within the startup timeout before starting the messaging manager. ctx
// bounds startup only; the goroutines run until Close.
func New(ctx context.Context, config Config) (*Radio, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	w, err := modem.New(ctx, config.Modem)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error { return w.Run(groupCtx) })

	r := &Radio{
		worker:   w,
		pipeline: w.Pipeline(),
		config:   config,
		logger:   config.Logger,
		cancel:   cancel,
		group:    group,
	}

	if err := r.handshake(ctx); err != nil {
		cancel()
		w.Close()
		group.Wait()
		return nil, err
	}
	r.logger.Info("Modem answered, starting messaging")

	r.manager = sms.NewManager(r.pipeline, config.Messaging)
	group.Go(func() error { return r.manager.Run(groupCtx) })
	return r, nil
}

func (r *Radio) handshake(ctx context.Context) error {
	reply := make(chan at.Reply, 1)
	if err := r.pipeline.Attention(reply); err != nil {
		return fmt.Errorf("%w: %w", ErrModemUnresponsive, err)
	}

	timer := time.NewTimer(r.config.StartupTimeout)
	defer timer.Stop()

	select {
	case rep := <-reply:
		if err := at.ParseOK(rep.Text); err != nil {
			return fmt.Errorf("%w: %w", ErrModemUnresponsive, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("%w within %s", ErrModemUnresponsive, r.config.StartupTimeout)
	case <-r.worker.Done():
		return fmt.Errorf("%w: worker stopped", ErrModemUnresponsive)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Client returns a copyable handle to the radio.
func (r *Radio) Client() Client {
	return Client{
		Client:   r.manager.Client(),
		pipeline: r.pipeline,
		done:     r.worker.Done(),
		timeout:  r.config.QueryTimeout,
	}
}

// Close stops both goroutines, waits for them and releases the transport.
func (r *Radio) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	r.cancel()
	err := r.group.Wait()
	if cerr := r.worker.Close(); cerr != nil && !errors.Is(cerr, modem.ErrAlreadyClosed) {
		return cerr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
