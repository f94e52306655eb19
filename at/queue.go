package at

// Queue is an unbounded multi-producer command channel. Envelopes sent to
// In are held in order until Out takes them, so producers only wait for the
// forwarding goroutine and never for the modem.
//
// In is buffered with the configured intake size so envelopes can be queued
// before Forward runs. Closing In makes Out close once the backlog has been
// taken.
type Queue struct {
	in  chan Envelope
	out chan Envelope
}

// NewQueue returns a Queue whose intake buffer holds size envelopes.
func NewQueue(size int) *Queue {
	return &Queue{
		in:  make(chan Envelope, size),
		out: make(chan Envelope),
	}
}

// In is the producer side.
func (q *Queue) In() chan<- Envelope {
	return q.in
}

// Out is the consumer side.
func (q *Queue) Out() <-chan Envelope {
	return q.out
}

// Forward moves envelopes from In to Out until In is closed and drained or
// stop is closed. It must run on exactly one goroutine.
func (q *Queue) Forward(stop <-chan struct{}) {
	defer close(q.out)

	var backlog []Envelope
	in := q.in
	for {
		var out chan<- Envelope
		var head Envelope
		if len(backlog) > 0 {
			out, head = q.out, backlog[0]
		} else if in == nil {
			return
		}

		select {
		case env, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			backlog = append(backlog, env)
		case out <- head:
			backlog[0] = Envelope{}
			backlog = backlog[1:]
		case <-stop:
			return
		}
	}
}
