package sms

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"i4.energy/across/gsmradio/at"
	"i4.energy/across/gsmradio/pdu"
)

// startManager runs a manager with fast timings until the test ends.
func startManager(t *testing.T, p Pipeline) (*Manager, context.CancelFunc) {
	t.Helper()

	config, err := NewConfigBuilder().
		WithPollInterval(time.Hour).
		WithTickInterval(time.Millisecond).
		WithReplyTimeout(200 * time.Millisecond).
		WithLogger(discard).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	m := NewManager(p, config)
	ctx, cancel := context.WithCancel(context.Background())
	go m.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-m.Done()
	})
	return m, cancel
}

// answerListing makes every listing request return text.
func answerListing(p *MockPipeline, text string) *gomock.Call {
	return p.EXPECT().ListSMS(at.StoreAll, gomock.Any()).DoAndReturn(func(_ at.SMSStore, reply chan<- at.Reply) error {
		reply <- at.Reply{Kind: at.KindListSMS, Text: text}
		return nil
	})
}

// waitMessages polls GetMessages until it returns n messages.
func waitMessages(t *testing.T, c Client, n int) []Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		msgs, err := c.GetMessages(context.Background())
		if err != nil {
			t.Fatalf("GetMessages: %v", err)
		}
		if len(msgs) == n {
			return msgs
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d messages, want %d", len(msgs), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManager_GetMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := NewMockPipeline(ctrl)
	answerListing(p, listing([]part{
		{sender: alice, minute: 2, text: "three", ref: 7, total: 3, seq: 3},
		{sender: alice, minute: 0, text: "one ", ref: 7, total: 3, seq: 1},
		{sender: bob, minute: 1, text: "hi"},
		{sender: alice, minute: 1, text: "two ", ref: 7, total: 3, seq: 2},
	})).Times(1)

	m, _ := startManager(t, p)
	c := m.Client()

	// The assembled message takes the timestamp of the first listed part,
	// 10:02, so it sorts after the single 10:01 message.
	first := waitMessages(t, c, 2)
	if first[0].Contents != "hi" || first[1].Contents != "one two three" {
		t.Errorf("unexpected messages: %+v", first)
	}
	want := slices.Clone(first)

	// Repeated reads return the same cache and callers cannot alter it.
	first[1].Contents = "changed"
	second, err := c.GetMessages(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(second, want) {
		t.Errorf("cache changed between reads:\n got %+v\nwant %+v", second, want)
	}
}

func TestManager_FailedListingKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := NewMockPipeline(ctrl)
	gomock.InOrder(
		answerListing(p, listing([]part{{sender: bob, minute: 1, text: "hi"}})),
		answerListing(p, "\n+CMS ERROR: 321\n"),
		answerListing(p, "\n+CMGL: 1,1,,9\nZZZZ\n\nOK\n").AnyTimes(),
	)

	config, err := NewConfigBuilder().
		WithPollInterval(5 * time.Millisecond).
		WithTickInterval(time.Millisecond).
		WithLogger(discard).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(p, config)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-m.Done()
	}()
	go m.Run(ctx)

	waitMessages(t, m.Client(), 1)
	time.Sleep(50 * time.Millisecond)
	if msgs := waitMessages(t, m.Client(), 1); msgs[0].Contents != "hi" {
		t.Errorf("cache replaced by failed listing: %+v", msgs)
	}
}

func TestManager_SendMessage(t *testing.T) {
	t.Run("Acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		answerListing(p, listing(nil))

		var sent pdu.Submission
		p.EXPECT().SendSMS(gomock.Any(), gomock.Any()).DoAndReturn(func(sub pdu.Submission, reply chan<- at.Reply) error {
			sent = sub
			reply <- at.Reply{Kind: at.KindSendSMS, Text: "\n+CMGS: 42\n\nOK\n"}
			return nil
		})

		m, _ := startManager(t, p)
		res, err := m.Client().SendMessage(context.Background(), "+1 555 123-4567", "Hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Reference != 42 {
			t.Errorf("reference = %d", res.Reference)
		}
		if sent.Hex != "0011000B915155214365F70008A70400480069" || sent.TPDULength != 18 {
			t.Errorf("unexpected submission: %+v", sent)
		}
	})

	t.Run("Rejected by modem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		answerListing(p, listing(nil))
		p.EXPECT().SendSMS(gomock.Any(), gomock.Any()).DoAndReturn(func(_ pdu.Submission, reply chan<- at.Reply) error {
			reply <- at.Reply{Kind: at.KindSendSMS, Text: "\n+CMS ERROR: 500\n"}
			return nil
		})

		m, _ := startManager(t, p)
		_, err := m.Client().SendMessage(context.Background(), "+15551234567", "Hi")
		if !errors.Is(err, at.ErrResultCode) {
			t.Errorf("expected ErrResultCode, got: %v", err)
		}
	})

	t.Run("Not acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		answerListing(p, listing(nil))
		p.EXPECT().SendSMS(gomock.Any(), gomock.Any()).Return(nil)

		m, _ := startManager(t, p)
		_, err := m.Client().SendMessage(context.Background(), "+15551234567", "Hi")
		if !errors.Is(err, ErrSendTimeout) {
			t.Errorf("expected ErrSendTimeout, got: %v", err)
		}
	})

	t.Run("Pipeline refuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		answerListing(p, listing(nil))
		p.EXPECT().SendSMS(gomock.Any(), gomock.Any()).Return(at.ErrWorkerStopped)

		m, _ := startManager(t, p)
		_, err := m.Client().SendMessage(context.Background(), "+15551234567", "Hi")
		if !errors.Is(err, at.ErrWorkerStopped) {
			t.Errorf("expected ErrWorkerStopped, got: %v", err)
		}
	})
}

func TestManager_SendMessageValidation(t *testing.T) {
	tests := []struct {
		name    string
		dest    string
		content string
		wantErr error
	}{
		{name: "69 units accepted", dest: "+15551234567", content: strings.Repeat("a", 69)},
		{name: "70 units rejected", dest: "+15551234567", content: strings.Repeat("a", 70), wantErr: ErrMessageTooLong},
		{name: "Surrogate pairs count twice", dest: "+15551234567", content: strings.Repeat("😀", 35), wantErr: ErrMessageTooLong},
		{name: "Letters in number", dest: "+1555CALLNOW", content: "hi", wantErr: ErrInvalidAddress},
		{name: "Empty number", dest: "", content: "hi", wantErr: ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			p := NewMockPipeline(ctrl)
			answerListing(p, listing(nil)).AnyTimes()
			calls := 0
			if tt.wantErr == nil {
				calls = 1
			}
			p.EXPECT().SendSMS(gomock.Any(), gomock.Any()).DoAndReturn(func(_ pdu.Submission, reply chan<- at.Reply) error {
				reply <- at.Reply{Kind: at.KindSendSMS, Text: "+CMGS: 1\nOK"}
				return nil
			}).Times(calls)

			m, _ := startManager(t, p)
			_, err := m.Client().SendMessage(context.Background(), tt.dest, tt.content)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestManager_Stopped(t *testing.T) {
	t.Run("Client after cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		answerListing(p, listing(nil)).AnyTimes()

		m, cancel := startManager(t, p)
		cancel()
		<-m.Done()

		if _, err := m.Client().GetMessages(context.Background()); !errors.Is(err, ErrManagerStopped) {
			t.Errorf("GetMessages: expected ErrManagerStopped, got: %v", err)
		}
		if _, err := m.Client().SendMessage(context.Background(), "+15551234567", "hi"); !errors.Is(err, ErrManagerStopped) {
			t.Errorf("SendMessage: expected ErrManagerStopped, got: %v", err)
		}
	})

	t.Run("Worker stopped ends the loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		p := NewMockPipeline(ctrl)
		p.EXPECT().ListSMS(at.StoreAll, gomock.Any()).Return(at.ErrWorkerStopped)

		m := NewManager(p, Config{TickInterval: time.Millisecond})
		err := m.Run(context.Background())
		if !errors.Is(err, at.ErrWorkerStopped) {
			t.Errorf("expected ErrWorkerStopped, got: %v", err)
		}
		if err := m.Run(context.Background()); !errors.Is(err, ErrLoopRunning) {
			t.Errorf("expected ErrLoopRunning, got: %v", err)
		}
	})
}
