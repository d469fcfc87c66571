package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

func TestUserAddToken(t *testing.T) {
	user := domain.NewUser(createUserID(t))

	added, err := user.AddToken("token-a")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = user.AddToken("token-a")
	require.NoError(t, err)
	assert.False(t, added, "duplicate registration must be suppressed")

	added, err = user.AddToken("token-b")
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []string{"token-a", "token-b"}, user.FCMTokens())
}

func TestUserAddTokenEmpty(t *testing.T) {
	user := domain.NewUser(createUserID(t))

	_, err := user.AddToken("")

	assert.ErrorIs(t, err, domain.ErrEmptyFCMToken)
}

func TestUserRemoveTokens(t *testing.T) {
	tests := []struct {
		name        string
		have        []string
		remove      []string
		wantRemoved int
		wantLeft    []string
	}{
		{
			name:        "remove one of two",
			have:        []string{"a", "b"},
			remove:      []string{"a"},
			wantRemoved: 1,
			wantLeft:    []string{"b"},
		},
		{
			name:        "remove all",
			have:        []string{"a", "b"},
			remove:      []string{"a", "b"},
			wantRemoved: 2,
			wantLeft:    []string{},
		},
		{
			name:        "unknown tokens are ignored",
			have:        []string{"a"},
			remove:      []string{"x", "y"},
			wantRemoved: 0,
			wantLeft:    []string{"a"},
		},
		{
			name:        "empty removal set is a no-op",
			have:        []string{"a"},
			remove:      nil,
			wantRemoved: 0,
			wantLeft:    []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := domain.ReconstituteUser(createUserID(t), tt.have, time.Now(), time.Now())

			removed := user.RemoveTokens(tt.remove)

			assert.Equal(t, tt.wantRemoved, removed)
			assert.ElementsMatch(t, tt.wantLeft, user.FCMTokens())
		})
	}
}

func TestUserFCMTokensReturnsCopy(t *testing.T) {
	user := domain.ReconstituteUser(createUserID(t), []string{"a", "b"}, time.Now(), time.Now())

	tokens := user.FCMTokens()
	tokens[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, user.FCMTokens())
}
