package service

import (
	"context"

	"twitch-giveaway-backend/internal/features/giveaway/models"
)

// Observer event names pushed to connected dashboards.
const (
	EventGiveawayStarted  = "giveawayStarted"
	EventParticipantAdded = "participantAdded"
	EventGiveawayEnded    = "giveawayEnded"
	EventWinnerSelected   = "winnerSelected"
	EventChatMessage      = "twitchMessage"
)

// Broadcaster pushes named events to all connected observers. Delivery is
// fire-and-forget: no acknowledgment, no replay for late joiners.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Announcer posts messages back into a channel's chat. A nil announcer (or a
// transport without credentials) silently drops announcements.
type Announcer interface {
	Say(channel, text string) error
}

// GiveawayManager owns every live session, keyed by channel, and is the only
// writer of session state.
type GiveawayManager interface {
	// StartGiveaway begins a giveaway for the channel. An already-active
	// session for the same channel is replaced and discarded.
	StartGiveaway(ctx context.Context, channel, keyword, prize string) (*models.SessionResponse, error)

	// EndGiveaway closes the channel's active session, drawing a winner when
	// participants exist.
	EndGiveaway(ctx context.Context, channel string) (*models.EndGiveawayResponse, error)

	// SelectWinner draws a winner without ending the session, so it can be
	// called repeatedly to reroll. A non-empty participantsOverride replaces
	// the working set for this draw only.
	SelectWinner(ctx context.Context, channel string, participantsOverride []string) (string, error)

	// GetActive returns the channel's active session, or nil.
	GetActive(channel string) *models.SessionResponse

	// TryAddParticipant registers a user in the channel's active session.
	// Returns whether the user was added (false on duplicate or when no
	// session is active) and the resulting participant count.
	TryAddParticipant(ctx context.Context, channel, username string) (added bool, count int)

	ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error)
	ListGiveaways(ctx context.Context, channel string) ([]*models.GiveawayRecord, error)
	UpdateWinnerTelegram(ctx context.Context, username, channel, telegram string) (*models.WinnerRecord, error)
}
