package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(opts ...Option) *Service {
	return NewService(Config{Delay: 0, TokenTTL: time.Hour}, opts...)
}

func TestRegisterForm_Validate(t *testing.T) {
	err := RegisterForm{Name: "  ", Email: "not-an-email", Role: "dispatcher"}.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Field("name"))
	assert.Equal(t, "must be a valid email address", verr.Field("email"))
	assert.Equal(t, "is required", verr.Field("password"))
	assert.Equal(t, "must be one of student_pilot, mechanic, instructor", verr.Field("role"))
	assert.Contains(t, err.Error(), "email must be a valid email address")

	ok := RegisterForm{Name: "Alex Thompson", Email: " alex@example.com ", Password: "x", Role: RoleInstructor}
	assert.NoError(t, ok.Validate())
}

func TestLoginForm_Validate(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, LoginForm{}.Validate(), &verr)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Equal(t, "password", verr.Fields[1].Field)

	assert.NoError(t, LoginForm{Email: "a@b.co", Password: "pw"}.Validate())
}

func TestLogin_UnknownUser(t *testing.T) {
	s := newTestService()

	sess, err := s.Login(context.Background(), LoginForm{Email: "Alex@Example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alex", sess.User.Name)
	assert.Equal(t, "alex@example.com", sess.User.Email)
	assert.Equal(t, RoleStudentPilot, sess.User.Role)
	assert.NotEmpty(t, sess.Token)
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	reg, err := s.Register(ctx, RegisterForm{Name: "Dana Reyes", Email: "dana@example.com", Password: "pw", Role: RoleMechanic})
	require.NoError(t, err)
	assert.Equal(t, RoleMechanic, reg.User.Role)

	sess, err := s.Login(ctx, LoginForm{Email: "DANA@example.com", Password: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", sess.User.Name)
	assert.Equal(t, RoleMechanic, sess.User.Role)
}

func TestLogin_InvalidFormSkipsDelay(t *testing.T) {
	s := NewService(Config{Delay: time.Hour, TokenTTL: time.Hour})

	_, err := s.Login(context.Background(), LoginForm{Email: "bad"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLogin_Cancelled(t *testing.T) {
	s := NewService(Config{Delay: time.Hour, TokenTTL: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Login(ctx, LoginForm{Email: "a@b.co", Password: "pw"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(WithClock(func() time.Time { return now }))

	sess, err := s.Register(context.Background(), RegisterForm{Name: "Sam", Email: "sam@example.com", Password: "pw", Role: RoleInstructor})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)

	u, err := s.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User, *u)
}

func TestVerify_Rejects(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := now
	s := newTestService(WithClock(func() time.Time { return clock }))

	sess, err := s.Login(context.Background(), LoginForm{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	t.Run("other process key", func(t *testing.T) {
		_, err := newTestService().Verify(sess.Token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: issuer, Subject: "a@b.co"})
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		clock = now.Add(2 * time.Hour)
		t.Cleanup(func() { clock = now })
		_, err := s.Verify(sess.Token)
		require.ErrorIs(t, err, ErrInvalidToken)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Student Pilot", RoleStudentPilot.Label())
	assert.Equal(t, "Flight Instructor", RoleInstructor.Label())
}
