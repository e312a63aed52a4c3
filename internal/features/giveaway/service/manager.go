package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"twitch-giveaway-backend/internal/common/config"
	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/common/logger"
	"twitch-giveaway-backend/internal/common/validation"
	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/repository"
)

// persistTimeout bounds background store writes so an unreachable store does
// not leak goroutines forever.
const persistTimeout = 10 * time.Second

type giveawayManager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session // channel -> active session

	repo        repository.GiveawayRepository
	broadcaster Broadcaster
	announcer   Announcer
	cfg         *config.Config
	log         zerolog.Logger
}

// NewGiveawayManager builds the manager. Membership check and insert share
// one critical section, so registration stays idempotent under concurrent
// chat events; store writes happen outside the lock, fire-and-forget, because
// in-memory state is authoritative and the store is a best-effort mirror.
func NewGiveawayManager(
	repo repository.GiveawayRepository,
	broadcaster Broadcaster,
	announcer Announcer,
	cfg *config.Config,
) GiveawayManager {
	return &giveawayManager{
		sessions:    make(map[string]*models.Session),
		repo:        repo,
		broadcaster: broadcaster,
		announcer:   announcer,
		cfg:         cfg,
		log:         logger.Component("giveaway_manager"),
	}
}

func (m *giveawayManager) StartGiveaway(ctx context.Context, channel, keyword, prize string) (*models.SessionResponse, error) {
	if err := validation.ValidateKeyword(keyword); err != nil {
		return nil, errors.NewValidationError("keyword", err.Error())
	}
	if err := validation.ValidatePrize(prize); err != nil {
		return nil, errors.NewValidationError("prize", err.Error())
	}
	if prize == "" {
		prize = m.cfg.Giveaway.DefaultPrize
	}

	keyword = models.NormalizeKeyword(keyword)

	// Record the giveaway before going live. On store failure the giveaway
	// still starts under a synthetic id: a lost history row must not block a
	// live stream.
	id := uuid.New().String()
	if record, err := m.repo.CreateGiveaway(ctx, channel, keyword, prize); err != nil {
		m.log.Warn().Err(err).Str("channel", channel).Msg("store unavailable, starting giveaway in memory only")
	} else {
		id = record.ID
	}

	session := models.NewSession(id, channel, keyword, prize)

	m.mu.Lock()
	replaced := m.sessions[channel]
	if replaced != nil {
		replaced.End()
	}
	m.sessions[channel] = session
	m.mu.Unlock()

	if replaced != nil {
		// Replace-and-discard policy: the superseded giveaway ends without a
		// winner and observers are told.
		m.log.Info().Str("channel", channel).Str("old_keyword", replaced.Keyword).Msg("active giveaway replaced by new start")
		m.persistAsync("end replaced giveaway", func(ctx context.Context) error {
			return m.repo.EndGiveaway(ctx, replaced.ID, "")
		})
		m.broadcast(EventGiveawayEnded, map[string]interface{}{
			"id":      replaced.ID,
			"channel": channel,
			"winner":  nil,
		})
	}

	m.log.Info().Str("channel", channel).Str("keyword", keyword).Str("prize", prize).Msg("giveaway started")
	m.broadcast(EventGiveawayStarted, map[string]interface{}{
		"id":      session.ID,
		"channel": channel,
		"keyword": keyword,
		"prize":   prize,
	})
	m.say(channel, fmt.Sprintf("Giveaway %q started! Type %q to enter!", prize, keyword))

	return session.Snapshot(), nil
}

func (m *giveawayManager) EndGiveaway(ctx context.Context, channel string) (*models.EndGiveawayResponse, error) {
	m.mu.Lock()
	session := m.sessions[channel]
	if session == nil {
		m.mu.Unlock()
		return &models.EndGiveawayResponse{Success: true, EndedCount: 0, Winner: nil}, nil
	}

	var winner string
	if session.ParticipantCount() > 0 {
		picked, err := PickWinner(session.Participants())
		if err != nil {
			m.mu.Unlock()
			return nil, err
		}
		winner = picked
		session.RecordWin(winner)
	}
	session.End()
	delete(m.sessions, channel)
	m.mu.Unlock()

	prize := session.Prize
	m.persistAsync("end giveaway", func(ctx context.Context) error {
		return m.repo.EndGiveaway(ctx, session.ID, winner)
	})
	if winner != "" {
		m.recordWinnerAsync(winner, channel, prize)
	}

	m.log.Info().Str("channel", channel).Str("winner", winner).Msg("giveaway ended")
	m.broadcast(EventGiveawayEnded, map[string]interface{}{
		"id":      session.ID,
		"channel": channel,
		"winner":  winnerOrNil(winner),
	})
	if winner != "" {
		m.say(channel, fmt.Sprintf("Giveaway %q is over! Winner: @%s", prize, winner))
	} else {
		m.say(channel, fmt.Sprintf("Giveaway %q is over! Nobody entered.", prize))
	}

	resp := &models.EndGiveawayResponse{Success: true, EndedCount: 1}
	if winner != "" {
		resp.Winner = &winner
	}
	return resp, nil
}

func (m *giveawayManager) SelectWinner(ctx context.Context, channel string, participantsOverride []string) (string, error) {
	m.mu.Lock()
	session := m.sessions[channel]
	if session == nil {
		m.mu.Unlock()
		return "", errors.NewNoActiveGiveawayError(channel)
	}

	pool := session.Participants()
	if len(participantsOverride) > 0 {
		pool = participantsOverride
	}
	if m.cfg.Giveaway.RerollExcludePrevious {
		pool = exclude(pool, session.Winners)
	}
	if len(pool) == 0 {
		m.mu.Unlock()
		return "", errors.NewNoParticipantsError(channel)
	}

	winner, err := PickWinner(pool)
	if err != nil {
		m.mu.Unlock()
		return "", err
	}
	session.RecordWin(winner)
	prize := session.Prize
	sessionID := session.ID
	m.mu.Unlock()

	m.recordWinnerAsync(winner, channel, prize)

	m.log.Info().Str("channel", channel).Str("winner", winner).Msg("winner selected")
	m.broadcast(EventWinnerSelected, map[string]interface{}{
		"giveawayId": sessionID,
		"channel":    channel,
		"winner":     winner,
	})
	m.say(channel, fmt.Sprintf("Congratulations @%s! You won the giveaway!", winner))

	return winner, nil
}

func (m *giveawayManager) GetActive(channel string) *models.SessionResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session := m.sessions[channel]
	if session == nil {
		return nil
	}
	return session.Snapshot()
}

func (m *giveawayManager) TryAddParticipant(ctx context.Context, channel, username string) (bool, int) {
	m.mu.Lock()
	session := m.sessions[channel]
	if session == nil || !session.IsActive() {
		m.mu.Unlock()
		return false, 0
	}

	added := session.AddParticipant(username)
	count := session.ParticipantCount()
	sessionID := session.ID
	m.mu.Unlock()

	if !added {
		// Duplicate registration is an explicit no-op: no store write, no
		// second notification.
		return false, count
	}

	m.persistAsync("add participant", func(ctx context.Context) error {
		return m.repo.AddParticipant(ctx, sessionID, username)
	})
	m.broadcast(EventParticipantAdded, map[string]interface{}{
		"giveawayId": sessionID,
		"channel":    channel,
		"username":   username,
		"count":      count,
	})

	return true, count
}

func (m *giveawayManager) ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error) {
	winners, err := m.repo.ListWinners(ctx, channel, limit)
	if err != nil {
		return nil, errors.NewPersistenceError("list winners", err)
	}
	return winners, nil
}

func (m *giveawayManager) ListGiveaways(ctx context.Context, channel string) ([]*models.GiveawayRecord, error) {
	giveaways, err := m.repo.ListGiveaways(ctx, channel)
	if err != nil {
		return nil, errors.NewPersistenceError("list giveaways", err)
	}
	return giveaways, nil
}

func (m *giveawayManager) UpdateWinnerTelegram(ctx context.Context, username, channel, telegram string) (*models.WinnerRecord, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, errors.NewValidationError("username", err.Error())
	}

	record, err := m.repo.UpdateWinnerTelegram(ctx, username, channel, telegram)
	if err == repository.ErrWinnerNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("No win recorded for %s", username))
	}
	if err != nil {
		return nil, errors.NewPersistenceError("update winner telegram", err)
	}
	return record, nil
}

// recordWinnerAsync mirrors a draw into the store. The per-user win total is
// computed there as read-modify-write, best-effort.
func (m *giveawayManager) recordWinnerAsync(winner, channel, prize string) {
	m.persistAsync("record winner", func(ctx context.Context) error {
		_, err := m.repo.RecordWinner(ctx, winner, channel, prize)
		return err
	})
}

// persistAsync runs a store write in the background. Failures are logged and
// dropped: persistence errors never propagate past the manager.
func (m *giveawayManager) persistAsync(operation string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			m.log.Warn().Err(err).Str("operation", operation).Msg("store write failed, in-memory state is authoritative")
		}
	}()
}

func (m *giveawayManager) broadcast(event string, payload interface{}) {
	if m.broadcaster != nil {
		m.broadcaster.Broadcast(event, payload)
	}
}

func (m *giveawayManager) say(channel, text string) {
	if m.announcer == nil {
		return
	}
	if err := m.announcer.Say(channel, text); err != nil {
		m.log.Warn().Err(err).Str("channel", channel).Msg("chat announcement failed")
	}
}

func exclude(pool, previous []string) []string {
	if len(previous) == 0 {
		return pool
	}
	seen := make(map[string]struct{}, len(previous))
	for _, p := range previous {
		seen[p] = struct{}{}
	}
	out := make([]string, 0, len(pool))
	for _, p := range pool {
		if _, ok := seen[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func winnerOrNil(winner string) interface{} {
	if winner == "" {
		return nil
	}
	return winner
}
