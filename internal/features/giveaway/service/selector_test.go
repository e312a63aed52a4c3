package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twitch-giveaway-backend/internal/common/errors"
)

func TestPickWinner_EmptyPool(t *testing.T) {
	_, err := PickWinner(nil)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNoParticipants, appErr.Code)
}

func TestPickWinner_SingleParticipant(t *testing.T) {
	winner, err := PickWinner([]string{"alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", winner)
}

func TestPickWinner_AlwaysFromPool(t *testing.T) {
	pool := []string{"alice", "bob", "carol", "dave"}
	for i := 0; i < 200; i++ {
		winner, err := PickWinner(pool)
		require.NoError(t, err)
		assert.Contains(t, pool, winner)
	}
}

func TestPickWinner_EveryParticipantReachable(t *testing.T) {
	pool := []string{"alice", "bob", "carol"}
	seen := make(map[string]bool)
	for i := 0; i < 500 && len(seen) < len(pool); i++ {
		winner, err := PickWinner(pool)
		require.NoError(t, err)
		seen[winner] = true
	}
	assert.Len(t, seen, len(pool), "every participant must have a nonzero chance")
}
