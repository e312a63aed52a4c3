package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"twitch-giveaway-backend/internal/common/logger"
	"twitch-giveaway-backend/internal/features/giveaway/models"
)

const (
	cmdStartGiveaway = "!startgiveaway"
	cmdEndGiveaway   = "!endgiveaway"
)

// ChatEventRouter turns raw chat events into giveaway actions: keyword entry,
// moderator commands, and the chat feed for connected observers.
type ChatEventRouter struct {
	manager     GiveawayManager
	broadcaster Broadcaster
	log         zerolog.Logger
}

func NewChatEventRouter(manager GiveawayManager, broadcaster Broadcaster) *ChatEventRouter {
	return &ChatEventRouter{
		manager:     manager,
		broadcaster: broadcaster,
		log:         logger.Component("chat_router"),
	}
}

// OnMessage handles one inbound chat event. Connection status events from the
// transport are relayed to observers but never treated as entries.
func (r *ChatEventRouter) OnMessage(ctx context.Context, event models.ChatEvent) {
	if event.IsSystem() {
		// Synthetic status lines reach observers through their own events,
		// never the chat feed, and never count as entries.
		return
	}
	if r.broadcaster != nil {
		r.broadcaster.Broadcast(EventChatMessage, map[string]interface{}{
			"channel":  event.Channel,
			"username": event.Username,
			"message":  event.Text,
		})
	}

	if r.handleCommand(ctx, event) {
		return
	}

	session := r.manager.GetActive(event.Channel)
	if session == nil {
		return
	}
	if models.NormalizeKeyword(event.Text) != session.Keyword {
		return
	}

	added, count := r.manager.TryAddParticipant(ctx, event.Channel, event.Username)
	if !added {
		return
	}
	r.log.Debug().
		Str("channel", event.Channel).
		Str("username", event.Username).
		Int("count", count).
		Msg("participant registered from chat")
}

// handleCommand runs moderator chat commands. Only moderators and the
// broadcaster may use them; everyone else's command text is ignored silently,
// same as any non-matching message.
func (r *ChatEventRouter) handleCommand(ctx context.Context, event models.ChatEvent) bool {
	text := strings.TrimSpace(event.Text)
	if !strings.HasPrefix(text, "!") {
		return false
	}
	command, args, _ := strings.Cut(text, " ")
	command = strings.ToLower(command)
	if command != cmdStartGiveaway && command != cmdEndGiveaway {
		return false
	}
	if !event.IsModerator() {
		return true
	}

	switch command {
	case cmdStartGiveaway:
		keyword, prize, _ := strings.Cut(strings.TrimSpace(args), " ")
		if keyword == "" {
			keyword = "!enter"
		}
		if _, err := r.manager.StartGiveaway(ctx, event.Channel, keyword, strings.TrimSpace(prize)); err != nil {
			r.log.Warn().Err(err).Str("channel", event.Channel).Msg("start command failed")
		}
	case cmdEndGiveaway:
		if _, err := r.manager.EndGiveaway(ctx, event.Channel); err != nil {
			r.log.Warn().Err(err).Str("channel", event.Channel).Msg("end command failed")
		}
	}
	return true
}
