package chat

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	tutor "github.com/skyscholar/skyscholar/internal/chat"
	"github.com/skyscholar/skyscholar/internal/screen"
	"github.com/skyscholar/skyscholar/internal/ui/components"
	"github.com/skyscholar/skyscholar/internal/ui/layout"
	"github.com/skyscholar/skyscholar/internal/ui/theme"
)

// Suggestions are offered below the greeting.
var Suggestions = []string{
	"What are VFR weather minimums?",
	"How do magnetos work?",
	"Explain the four forces of flight",
}

// focus is the pane receiving keys.
type focus int

const (
	focusInput focus = iota
	focusMessages
)

// ChatScreen is the tutor conversation.
type ChatScreen struct {
	env        *screen.Env
	transcript *tutor.Transcript
	input      components.TextInput
	viewport   viewport.Model
	spinner    spinner.Model
	focus      focus

	// cursor indexes the transcript message selected for feedback.
	cursor int

	ctx    context.Context
	cancel context.CancelFunc

	width, height int
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
	_ screen.Closer          = (*ChatScreen)(nil)
	_ screen.InputCapturer   = (*ChatScreen)(nil)
)

// New creates a chat screen with a fresh transcript.
func New(env *screen.Env) *ChatScreen {
	opts := []tutor.Option{}
	if env.ReplyDelay > 0 {
		opts = append(opts, tutor.WithReplyDelay(env.ReplyDelay))
	}
	if env.Logger != nil {
		opts = append(opts, tutor.WithLogger(env.Logger))
	}
	answers := env.Answers
	if answers == nil {
		answers = tutor.NewKeywordProvider()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &ChatScreen{
		env:        env,
		transcript: tutor.NewTranscript(answers, opts...),
		input:      components.NewTextInput("", "Ask about regulations, weather, systems...", 500),
		viewport:   viewport.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		ctx:        ctx,
		cancel:     cancel,
	}
	return c
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Focus()
}

func (c *ChatScreen) Title() string {
	return "Tutor Chat"
}

// Transcript exposes the conversation for tests.
func (c *ChatScreen) Transcript() *tutor.Transcript {
	return c.transcript
}

// CapturingInput reports whether the message box has focus.
func (c *ChatScreen) CapturingInput() bool {
	return c.focus == focusInput
}

// Close discards any pending reply.
func (c *ChatScreen) Close() {
	c.cancel()
	c.transcript.Close()
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.focus == focusMessages {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Select reply"},
			{Key: "y/n", Description: "Helpful / Not helpful"},
			{Key: "Tab", Description: "Type"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Rate replies"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return c, c.handleReply(msg)

	case spinner.TickMsg:
		if !c.transcript.Pending() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		c.refresh()
		return c, cmd

	case tea.KeyPressMsg:
		return c, c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return c.toggleFocus()
	case "pgup":
		c.viewport.PageUp()
		return nil
	case "pgdown":
		c.viewport.PageDown()
		return nil
	}

	if c.focus == focusMessages {
		return c.handleMessageKey(msg)
	}

	if msg.String() == "enter" {
		return c.send()
	}
	if c.transcript.Pending() {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChatScreen) toggleFocus() tea.Cmd {
	if c.focus == focusInput {
		c.focus = focusMessages
		c.input.Blur()
		c.cursor = c.lastAssistant()
		c.refresh()
		return nil
	}
	c.focus = focusInput
	c.refresh()
	return c.input.Focus()
}

func (c *ChatScreen) handleMessageKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		c.moveCursor(-1)
	case "down", "j":
		c.moveCursor(1)
	case "y", "+":
		return c.rate(true)
	case "n", "-":
		return c.rate(false)
	}
	return nil
}

// moveCursor steps to the previous or next tutor reply.
func (c *ChatScreen) moveCursor(step int) {
	msgs := c.transcript.Messages()
	for i := c.cursor + step; i >= 0 && i < len(msgs); i += step {
		if msgs[i].FromAssistant() {
			c.cursor = i
			break
		}
	}
	c.refresh()
}

func (c *ChatScreen) lastAssistant() int {
	msgs := c.transcript.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].FromAssistant() {
			return i
		}
	}
	return 0
}

func (c *ChatScreen) rate(positive bool) tea.Cmd {
	msgs := c.transcript.Messages()
	if c.cursor < 0 || c.cursor >= len(msgs) {
		return nil
	}
	applied, err := c.transcript.Feedback(msgs[c.cursor].ID, positive)
	if err != nil || !applied {
		return nil
	}
	c.refresh()
	return components.Toast("Feedback received", "Thank you for your feedback!", components.SeveritySuccess)
}

func (c *ChatScreen) send() tea.Cmd {
	text := c.input.Value()
	ticket, err := c.transcript.Send(text)
	switch {
	case errors.Is(err, tutor.ErrEmptyMessage), errors.Is(err, tutor.ErrReplyPending):
		return nil
	case err != nil:
		return components.Toast("Chat is closed", "", components.SeverityError)
	}

	c.input.Reset()
	c.refresh()
	c.viewport.GotoBottom()

	tr, ctx := c.transcript, c.ctx
	resolve := func() tea.Msg {
		msg, err := tr.Resolve(ctx, ticket)
		return replyMsg{question: text, msg: msg, err: err}
	}
	return tea.Batch(resolve, c.spinner.Tick)
}

func (c *ChatScreen) handleReply(msg replyMsg) tea.Cmd {
	if errors.Is(msg.err, tutor.ErrClosed) || errors.Is(msg.err, context.Canceled) {
		return nil
	}
	c.refresh()
	c.viewport.GotoBottom()
	if msg.err != nil {
		return components.Toast("The tutor could not answer", "Please try again in a moment.", components.SeverityError)
	}
	if c.env.Activity != nil {
		c.env.Activity.RecordChat(topicOf(msg.question))
	}
	return nil
}

// topicOf shortens a question to a one-line activity label.
func topicOf(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	const limit = 48
	if r := []rune(q); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return q
}

func (c *ChatScreen) View(width, height int) string {
	if width != c.width || height != c.height {
		c.width, c.height = width, height
		c.refresh()
	}

	inputBox := c.renderInput(width)
	c.viewport.SetWidth(width)
	c.viewport.SetHeight(max(height-lipgloss.Height(inputBox), 1))

	return c.viewport.View() + "\n" + inputBox
}

// refresh re-renders the transcript into the viewport.
func (c *ChatScreen) refresh() {
	if c.width == 0 {
		return
	}
	atBottom := c.viewport.AtBottom()
	c.viewport.SetContent(c.renderMessages(c.width))
	if atBottom {
		c.viewport.GotoBottom()
	}
}
