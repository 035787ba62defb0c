package oauthtest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertionRoundTrip(t *testing.T) {
	assertion, err := MakeAssertion("user-1", "https://oauth.example.com")
	require.NoError(t, err)

	user, err := userFromAssertion(assertion)
	require.NoError(t, err)
	require.Equal(t, "user-1", user)
}

func TestUserFromAssertion_Invalid(t *testing.T) {
	_, err := userFromAssertion("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidAssertion)

	noSubject, err := MakeAssertion("", "aud")
	require.NoError(t, err)
	_, err = userFromAssertion(noSubject)
	require.ErrorIs(t, err, ErrInvalidAssertion)
}
