package auth

import (
	"testing"
	"time"

	"github.com/smallbiznis/kahraba/internal/clock"
	"github.com/smallbiznis/kahraba/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*Service, *clock.FakeClock) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		Cfg:   config.Config{AdminUsername: "admin", AdminPassword: "s3cret"},
		Log:   zap.NewNop(),
		Clock: fake,
	})
	return svc, fake
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	token, expiresAt, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
	assert.True(t, svc.Validate(token))
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _ := newTestService()

	for _, tc := range [][2]string{
		{"admin", "wrong"},
		{"root", "s3cret"},
		{"", ""},
	} {
		_, _, err := svc.Login(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestValidate_ExpiredSession(t *testing.T) {
	svc, fake := newTestService()

	token, _, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	fake.Advance(SessionTTL + time.Minute)
	assert.False(t, svc.Validate(token))
}

func TestLogout(t *testing.T) {
	svc, _ := newTestService()

	token, _, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)

	svc.Logout(token)
	assert.False(t, svc.Validate(token))
}
