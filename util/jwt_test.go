package util

import (
	"movie_tracker/configs"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("SESSION_SECRET", "test-secret")
	configs.LoadEnvVariables()
	os.Exit(m.Run())
}

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := CreateSessionToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, claims, err := VerifySessionToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestSessionToken_UniqueIds(t *testing.T) {
	first, err := CreateSessionToken("alice")
	require.NoError(t, err)
	second, err := CreateSessionToken("alice")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifySessionToken_RejectsTampered(t *testing.T) {
	token, err := CreateSessionToken("alice")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, _, err = VerifySessionToken(tampered)
	require.Error(t, err)

	_, _, err = VerifySessionToken("not-a-token")
	require.Error(t, err)
}
