package chat

import tutor "github.com/skyscholar/skyscholar/internal/chat"

// replyMsg carries the outcome of a pending tutor reply.
type replyMsg struct {
	question string
	msg      tutor.Message
	err      error
}
