package chat

import "time"

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Feedback is the learner's rating of a tutor reply.
type Feedback int

const (
	FeedbackUnset Feedback = iota
	FeedbackPositive
	FeedbackNegative
)

// String returns "unset", "positive" or "negative".
func (f Feedback) String() string {
	switch f {
	case FeedbackPositive:
		return "positive"
	case FeedbackNegative:
		return "negative"
	default:
		return "unset"
	}
}

// Source is a citation attached to a tutor reply.
type Source struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
}

// Message is one entry in a Transcript.
type Message struct {
	ID        string
	Content   string
	Sender    Sender
	Timestamp time.Time
	Sources   []Source
	Feedback  Feedback
}

// FromAssistant reports whether the tutor wrote the message.
func (m Message) FromAssistant() bool {
	return m.Sender == SenderAssistant
}
