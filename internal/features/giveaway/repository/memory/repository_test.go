package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch-giveaway-backend/internal/features/giveaway/repository"
)

func TestCreateAndEndGiveaway(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	record, err := repo.CreateGiveaway(ctx, "somechannel", "!enter", "Steam key")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.True(t, record.IsActive)

	require.NoError(t, repo.EndGiveaway(ctx, record.ID, "alice"))

	history, err := repo.ListGiveaways(ctx, "somechannel")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsActive)
	assert.Equal(t, "alice", history[0].Winner)
	require.NotNil(t, history[0].EndedAt)
}

func TestEndGiveaway_UnknownID(t *testing.T) {
	repo := NewRepository()
	err := repo.EndGiveaway(context.Background(), "nope", "")
	assert.ErrorIs(t, err, repository.ErrGiveawayNotFound)
}

func TestListGiveaways_NewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	first, err := repo.CreateGiveaway(ctx, "somechannel", "!one", "")
	require.NoError(t, err)
	second, err := repo.CreateGiveaway(ctx, "somechannel", "!two", "")
	require.NoError(t, err)

	history, err := repo.ListGiveaways(ctx, "somechannel")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestRecordWinner_CountsTotalWins(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	record, err := repo.RecordWinner(ctx, "alice", "somechannel", "first prize")
	require.NoError(t, err)
	assert.EqualValues(t, 1, record.TotalWins)

	record, err = repo.RecordWinner(ctx, "alice", "somechannel", "second prize")
	require.NoError(t, err)
	assert.EqualValues(t, 2, record.TotalWins)

	// Totals are per channel.
	record, err = repo.RecordWinner(ctx, "alice", "otherchannel", "prize")
	require.NoError(t, err)
	assert.EqualValues(t, 1, record.TotalWins)
}

func TestListWinners_LimitAndOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := repo.RecordWinner(ctx, name, "somechannel", "prize")
		require.NoError(t, err)
	}

	winners, err := repo.ListWinners(ctx, "somechannel", 2)
	require.NoError(t, err)
	require.Len(t, winners, 2)
	assert.Equal(t, "carol", winners[0].Username)
	assert.Equal(t, "bob", winners[1].Username)

	all, err := repo.ListWinners(ctx, "somechannel", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateWinnerTelegram(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.RecordWinner(ctx, "alice", "somechannel", "prize")
	require.NoError(t, err)

	record, err := repo.UpdateWinnerTelegram(ctx, "alice", "somechannel", "@alice_tg")
	require.NoError(t, err)
	assert.Equal(t, "@alice_tg", record.Telegram)

	winners, err := repo.ListWinners(ctx, "somechannel", 10)
	require.NoError(t, err)
	assert.Equal(t, "@alice_tg", winners[0].Telegram)

	_, err = repo.UpdateWinnerTelegram(ctx, "ghost", "somechannel", "@ghost")
	assert.ErrorIs(t, err, repository.ErrWinnerNotFound)
}

func TestAddParticipantRows(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	record, err := repo.CreateGiveaway(ctx, "somechannel", "!enter", "")
	require.NoError(t, err)
	require.NoError(t, repo.AddParticipant(ctx, record.ID, "alice"))
	require.NoError(t, repo.AddParticipant(ctx, record.ID, "bob"))

	assert.Equal(t, []string{"alice", "bob"}, repo.Participants(record.ID))
}
