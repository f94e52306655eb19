package modem

import (
	"io"
	"sync"
	"time"
)

type chunk struct {
	data []byte
	err  error
}

// TestTransport is a test helper that simulates a serial port with a read
// timeout using channels. Reads block until data is queued with SendData or
// the read timeout passes, in which case they return (0, nil) like
// go.bug.st/serial does. Everything written is published on Writes.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan chunk
	writes   chan []byte
	timeout  time.Duration
	rest     []byte
	closed   bool
	writeErr error
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan chunk, 16),
		writes:   make(chan []byte, 64),
		timeout:  20 * time.Millisecond,
	}
}

// SetReadTimeout implements the same method of serial.Port.
func (t *TestTransport) SetReadTimeout(d time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = d
	return nil
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	if t.writeErr != nil {
		return 0, t.writeErr
	}
	select {
	case t.writes <- append([]byte(nil), p...):
	default:
	}
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	if len(t.rest) > 0 {
		n = copy(p, t.rest)
		t.rest = t.rest[n:]
		t.mu.Unlock()
		return n, nil
	}
	timeout := t.timeout
	t.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case c, ok := <-t.readChan:
		if !ok {
			return 0, io.EOF
		}
		if c.err != nil {
			return 0, c.err
		}
		n = copy(p, c.data)
		t.mu.Lock()
		t.rest = append(t.rest, c.data[n:]...)
		t.mu.Unlock()
		return n, nil
	case <-timer.C:
		return 0, nil
	}
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendData queues data to be read by the transport.
// This simulates receiving data from the modem.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- chunk{data: []byte(data)}
	}
}

// SendError makes the next read fail with err.
func (t *TestTransport) SendError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- chunk{err: err}
	}
}

// FailWrites makes every following write fail with err.
func (t *TestTransport) FailWrites(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeErr = err
}

// Writes publishes a copy of every successful write.
func (t *TestTransport) Writes() <-chan []byte {
	return t.writes
}
