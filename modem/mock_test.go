package modem_test

import (
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/gsmradio/modem"
)

// MockSequenceBuilder records an ordered conversation with a mocked
// transport. Quiet reads return (0, nil) like a serial port whose read
// timeout expired.
type MockSequenceBuilder struct {
	transport *modem.MockTransport
	calls     []any
	last      *gomock.Call
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

func (b *MockSequenceBuilder) add(c *gomock.Call) *MockSequenceBuilder {
	b.calls = append(b.calls, c)
	b.last = c
	return b
}

// Command expects wire to be written.
func (b *MockSequenceBuilder) Command(wire string) *MockSequenceBuilder {
	return b.add(b.transport.EXPECT().Write([]byte(wire)).Return(len(wire), nil))
}

// Respond makes the next read return data.
func (b *MockSequenceBuilder) Respond(data string) *MockSequenceBuilder {
	return b.add(b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
		copy(p, data)
		return len(data), nil
	}))
}

// Quiet makes the next read time out.
func (b *MockSequenceBuilder) Quiet() *MockSequenceBuilder {
	return b.add(b.transport.EXPECT().Read(gomock.Any()).Return(0, nil))
}

// Fail makes the next read fail with err.
func (b *MockSequenceBuilder) Fail(err error) *MockSequenceBuilder {
	return b.add(b.transport.EXPECT().Read(gomock.Any()).Return(0, err))
}

// Attention is a complete AT/OK exchange.
func (b *MockSequenceBuilder) Attention() *MockSequenceBuilder {
	return b.Command("AT\r").Respond("\r\nOK\r\n").Quiet()
}

// Build orders the recorded calls and lets the transport stay quiet
// afterwards.
func (b *MockSequenceBuilder) Build() []any {
	gomock.InOrder(b.calls...)
	idle := b.transport.EXPECT().Read(gomock.Any()).Return(0, nil).AnyTimes()
	if b.last != nil {
		idle.After(b.last)
	}
	return b.calls
}
