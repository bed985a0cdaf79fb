package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueAndVerify(t *testing.T) {
	signed, err := Issue("42", "admin", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Verify(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.SubjectID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestVerifyExpired(t *testing.T) {
	signed, err := Issue("7", "user", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Verify(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue("7", "user", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(signed, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTampered(t *testing.T) {
	signed, err := Issue("7", "user", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Verify(signed+"x", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = Verify("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssueAndVerifyReset(t *testing.T) {
	signed, err := IssueReset("13", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyReset(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "13", claims.SubjectID)
}

func TestVerifyResetExpired(t *testing.T) {
	signed, err := IssueReset("13", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyReset(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
