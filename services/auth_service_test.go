package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(&fakeUserRepo{f})

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName:    "Aigerim",
		LastName:     "N",
		Email:        "aigerim@test.dev",
		Password:     "correct horse",
		UniversityID: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	logged, err := svc.Login(context.Background(), LoginInput{
		Email:    "aigerim@test.dev",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(&fakeUserRepo{f})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "short@test.dev",
		Password: "1234567",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthRegisterRejectsTakenEmail(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(&fakeUserRepo{f})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@test.dev", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: "dup@test.dev", Password: "long enough"})
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture()
	svc := NewAuthService(&fakeUserRepo{f})

	_, err := svc.Register(context.Background(), RegisterInput{Email: "x@test.dev", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "x@test.dev", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@test.dev", Password: "long enough"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
