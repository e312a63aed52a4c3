package repository

import (
	"context"
	"errors"

	"twitch-giveaway-backend/internal/features/giveaway/models"
)

var (
	ErrGiveawayNotFound = errors.New("giveaway not found")
	ErrWinnerNotFound   = errors.New("winner not found")
)

// GiveawayRepository is the durable mirror of giveaway state. Every call is
// fallible and must be treated as non-blocking to live gameplay: a failing
// store degrades history, never the running giveaway.
type GiveawayRepository interface {
	// CreateGiveaway durably records a started giveaway and returns it with
	// its assigned id.
	CreateGiveaway(ctx context.Context, channel, keyword, prize string) (*models.GiveawayRecord, error)

	// EndGiveaway marks the record inactive, stamping the end time and the
	// winner (empty when the giveaway ended without participants).
	EndGiveaway(ctx context.Context, giveawayID, winner string) error

	// AddParticipant appends a participant row for a giveaway.
	AddParticipant(ctx context.Context, giveawayID, username string) error

	// RecordWinner inserts a win and returns the record including the user's
	// running win total for the channel.
	RecordWinner(ctx context.Context, username, channel, prize string) (*models.WinnerRecord, error)

	// ListWinners returns up to limit most recent wins for a channel.
	ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error)

	// ListGiveaways returns the channel's giveaway history, newest first.
	ListGiveaways(ctx context.Context, channel string) ([]*models.GiveawayRecord, error)

	// UpdateWinnerTelegram sets the Telegram contact on the user's most
	// recent win for the channel.
	UpdateWinnerTelegram(ctx context.Context, username, channel, telegram string) (*models.WinnerRecord, error)
}
