package screen

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/skyscholar/skyscholar/internal/activity"
	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/chat"
	"github.com/skyscholar/skyscholar/internal/content"
	"github.com/skyscholar/skyscholar/internal/study"
)

// Env is the set of services shared by all screens. The application owns
// it and mutates it only from the update loop.
type Env struct {
	Catalog    *study.Catalog
	QuizBank   content.QuizBank
	Answers    chat.AnswerProvider
	ReplyDelay time.Duration
	Auth       *auth.Service
	Activity   *activity.Log
	Logger     *slog.Logger

	// ProviderName is shown in the profile settings tab.
	ProviderName string

	// Session is the signed-in learner, nil until login or registration.
	// Set it through SignIn so the token is checked.
	Session *auth.Session

	user *auth.User
}

// SignIn verifies the session token and makes its holder the current user.
// On failure the previous session is dropped and nobody is signed in.
func (e *Env) SignIn(s *auth.Session) error {
	e.SignOut()
	if s == nil {
		return auth.ErrInvalidToken
	}
	if e.Auth == nil {
		return fmt.Errorf("%w: no auth service", auth.ErrInvalidToken)
	}
	u, err := e.Auth.Verify(s.Token)
	if err != nil {
		return err
	}
	e.Session, e.user = s, u
	return nil
}

// SignOut forgets the current session.
func (e *Env) SignOut() {
	e.Session, e.user = nil, nil
}

// User returns the verified user while the session token is still valid.
func (e *Env) User() (auth.User, bool) {
	if e == nil || e.user == nil || e.Session == nil || e.Auth == nil {
		return auth.User{}, false
	}
	if _, err := e.Auth.Verify(e.Session.Token); err != nil {
		return auth.User{}, false
	}
	return *e.user, true
}

// SignedInMsg reports a successful login or registration.
type SignedInMsg struct {
	Session *auth.Session
}

// SignedOutMsg asks the application to forget the current session.
type SignedOutMsg struct{}
