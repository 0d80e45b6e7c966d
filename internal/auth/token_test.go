package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("secret")

	token, err := m.Issue("user-1", "tenant")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("user-1", "tenant")
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret").Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Admin@123")
	assert.NoError(t, err)
	assert.True(t, CheckPassword(hash, "Admin@123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
