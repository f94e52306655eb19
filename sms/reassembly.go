package sms

import (
	"log/slog"
	"slices"
	"strings"

	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
)

type partialKey struct {
	sender    string
	reference uint8
}

// partialMessage collects the parts of a concatenated message.
type partialMessage struct {
	first *pdu.Message
	parts []*string
	found int
}

func newPartial(first *pdu.Message, total uint8) *partialMessage {
	return &partialMessage{first: first, parts: make([]*string, total)}
}

// add stores the text of part seq. A part that is already present is not
// counted twice.
func (p *partialMessage) add(info pdu.ConcatenationInfo, text string) bool {
	if int(info.TotalParts) != len(p.parts) {
		return false
	}
	slot := &p.parts[info.SequenceNumber-1]
	if *slot == nil {
		*slot = &text
		p.found++
	}
	return true
}

func (p *partialMessage) complete() bool { return p.found == len(p.parts) }

func (p *partialMessage) missing() []int {
	var seqs []int
	for i, part := range p.parts {
		if part == nil {
			seqs = append(seqs, i+1)
		}
	}
	return seqs
}

func (p *partialMessage) message() Message {
	var b strings.Builder
	for _, part := range p.parts {
		b.WriteString(*part)
	}
	return Message{
		Sender:    p.first.Sender.String(),
		Timestamp: p.first.Timestamp,
		Contents:  b.String(),
	}
}

// assemble turns a listing into messages ordered by timestamp. Stored
// outgoing messages are skipped and multi-part messages are only returned
// once complete.
func assemble(entries []at.ListSMSEntry, logger *slog.Logger) []Message {
	var (
		out      []Message
		partials = make(map[partialKey]*partialMessage)
		order    []partialKey
	)

	for _, e := range entries {
		m := e.Message
		if m.Info.Type != pdu.TypeDeliver {
			continue
		}

		info, ok := m.UserData.Concatenation()
		if !ok {
			out = append(out, Message{
				Sender:    m.Sender.String(),
				Timestamp: m.Timestamp,
				Contents:  m.UserData.Text,
			})
			continue
		}

		key := partialKey{sender: m.Sender.String(), reference: info.Reference}
		p, ok := partials[key]
		if !ok {
			p = newPartial(m, info.TotalParts)
			partials[key] = p
			order = append(order, key)
		}
		if !p.add(info, m.UserData.Text) {
			logger.Warn("Dropping message part with mismatched part count",
				"index", e.Index, "sender", key.sender, "reference", key.reference,
				"total", info.TotalParts, "expected", len(p.parts))
		}
	}

	for _, key := range order {
		p := partials[key]
		if !p.complete() {
			logger.Debug("Multi-part message incomplete",
				"sender", key.sender, "reference", key.reference, "missing", p.missing())
			continue
		}
		out = append(out, p.message())
	}

	slices.SortStableFunc(out, func(a, b Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
