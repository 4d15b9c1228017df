package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrReplyPending   = errors.New("a reply is already pending")
	ErrStaleTicket    = errors.New("ticket is not the pending reply")
	ErrClosed         = errors.New("transcript closed")
	ErrUnknownMessage = errors.New("unknown message")
	ErrNotAssistant   = errors.New("feedback is only accepted on tutor replies")
)

// DefaultReplyDelay is how long the tutor "types" before replying.
const DefaultReplyDelay = 1500 * time.Millisecond

// Greeting opens every transcript.
const Greeting = "Hello! Welcome to Sky Scholar. How can I help with your aviation studies today?"

// Ticket identifies the single outstanding tutor reply.
type Ticket uint64

type pendingReply struct {
	ticket    Ticket
	question  string
	resolving bool
	cancel    context.CancelFunc
}

// Transcript is the ordered message log of one chat session. Messages are
// only ever appended; the one mutation allowed afterwards is attaching
// feedback to a tutor reply, once.
//
// At most one reply is pending at a time. Send opens it and Resolve
// delivers it after the reply delay. Close invalidates the pending ticket
// so nothing is appended after the owning screen is gone.
type Transcript struct {
	provider AnswerProvider
	delay    time.Duration
	now      func() time.Time
	newID    func() string
	logger   *slog.Logger

	mu       sync.Mutex
	messages []Message
	pending  *pendingReply
	next     Ticket
	closed   bool
	done     chan struct{}
}

// Option configures a Transcript.
type Option func(*Transcript)

// WithReplyDelay overrides DefaultReplyDelay.
func WithReplyDelay(d time.Duration) Option {
	return func(t *Transcript) { t.delay = d }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Transcript) { t.now = now }
}

// WithIDGenerator overrides the UUIDv7 message ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(t *Transcript) { t.newID = fn }
}

// WithLogger sets the logger used for reply failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transcript) { t.logger = l }
}

// NewTranscript creates a transcript that opens with the tutor greeting.
func NewTranscript(provider AnswerProvider, opts ...Option) *Transcript {
	t := &Transcript{
		provider: provider,
		delay:    DefaultReplyDelay,
		now:      time.Now,
		newID:    newMessageID,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.messages = append(t.messages, Message{
		ID:        t.newID(),
		Content:   Greeting,
		Sender:    SenderAssistant,
		Timestamp: t.now(),
	})
	return t
}

// newMessageID returns a time-ordered unique ID.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Send appends a learner message and opens a pending reply for it.
// Whitespace-only text is rejected with ErrEmptyMessage and changes nothing.
func (t *Transcript) Send(text string) (Ticket, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyMessage
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}
	if t.pending != nil {
		return 0, ErrReplyPending
	}

	t.messages = append(t.messages, Message{
		ID:        t.newID(),
		Content:   text,
		Sender:    SenderUser,
		Timestamp: t.now(),
	})

	t.next++
	t.pending = &pendingReply{ticket: t.next, question: text}
	return t.next, nil
}

// Resolve waits out the reply delay, asks the provider for an answer and
// appends it as a tutor message. It blocks; run it off the UI loop.
//
// A ticket resolves at most once. Cancelling ctx abandons the reply and
// frees the transcript for the next message. Close makes Resolve return
// ErrClosed without appending anything.
func (t *Transcript) Resolve(ctx context.Context, ticket Ticket) (Message, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Message{}, ErrClosed
	}
	p := t.pending
	if p == nil || p.ticket != ticket || p.resolving {
		t.mu.Unlock()
		return Message{}, ErrStaleTicket
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.resolving = true
	p.cancel = cancel
	done := t.done
	t.mu.Unlock()

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	select {
	case <-done:
		return Message{}, ErrClosed
	case <-ctx.Done():
		t.abandon(ticket)
		return Message{}, ctx.Err()
	case <-timer.C:
	}

	reply, err := t.provider.Answer(ctx, p.question)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return Message{}, ErrClosed
	}
	if t.pending == nil || t.pending.ticket != ticket {
		return Message{}, ErrStaleTicket
	}
	t.pending = nil

	if err != nil {
		t.logger.Warn("tutor reply failed", "ticket", uint64(ticket), "error", err)
		return Message{}, fmt.Errorf("answer question: %w", err)
	}

	msg := Message{
		ID:        t.newID(),
		Content:   reply.Content,
		Sender:    SenderAssistant,
		Timestamp: t.now(),
		Sources:   reply.Sources,
	}
	t.messages = append(t.messages, msg)
	return cloneMessage(msg), nil
}

func (t *Transcript) abandon(ticket Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil && t.pending.ticket == ticket {
		t.pending = nil
	}
}

// Pending reports whether a reply is outstanding. Input is disabled while
// it is true.
func (t *Transcript) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Feedback records the learner's rating of a tutor reply. It applies only
// once per message: later calls report false and change nothing.
func (t *Transcript) Feedback(id string, positive bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		m := &t.messages[i]
		if m.ID != id {
			continue
		}
		if !m.FromAssistant() {
			return false, ErrNotAssistant
		}
		if m.Feedback != FeedbackUnset {
			return false, nil
		}
		if positive {
			m.Feedback = FeedbackPositive
		} else {
			m.Feedback = FeedbackNegative
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownMessage, id)
}

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.messages))
	for i, m := range t.messages {
		out[i] = cloneMessage(m)
	}
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

// Close invalidates any pending reply. It is safe to call more than once.
func (t *Transcript) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	if t.pending != nil && t.pending.cancel != nil {
		t.pending.cancel()
	}
	t.pending = nil
	close(t.done)
}

func cloneMessage(m Message) Message {
	if m.Sources != nil {
		m.Sources = append([]Source(nil), m.Sources...)
	}
	return m
}
