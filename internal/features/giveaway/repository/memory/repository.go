package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/repository"
)

// Repository is the in-memory persistence adapter: the test double, and the
// fallback store when the process runs without Redis.
type Repository struct {
	mu           sync.RWMutex
	giveaways    map[string]*models.GiveawayRecord
	history      map[string][]string // channel -> giveaway ids, newest first
	participants map[string][]string // giveaway id -> usernames
	winners      map[string][]*models.WinnerRecord // channel -> records, newest first
	winCounts    map[string]int64    // channel:username -> total wins
}

func NewRepository() *Repository {
	return &Repository{
		giveaways:    make(map[string]*models.GiveawayRecord),
		history:      make(map[string][]string),
		participants: make(map[string][]string),
		winners:      make(map[string][]*models.WinnerRecord),
		winCounts:    make(map[string]int64),
	}
}

func (r *Repository) CreateGiveaway(_ context.Context, channel, keyword, prize string) (*models.GiveawayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := &models.GiveawayRecord{
		ID:        uuid.New().String(),
		Channel:   channel,
		Keyword:   keyword,
		Prize:     prize,
		StartedAt: time.Now(),
		IsActive:  true,
	}
	r.giveaways[record.ID] = record
	r.history[channel] = append([]string{record.ID}, r.history[channel]...)

	copied := *record
	return &copied, nil
}

func (r *Repository) EndGiveaway(_ context.Context, giveawayID, winner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.giveaways[giveawayID]
	if !ok {
		return repository.ErrGiveawayNotFound
	}
	now := time.Now()
	record.IsActive = false
	record.EndedAt = &now
	record.Winner = winner
	return nil
}

func (r *Repository) AddParticipant(_ context.Context, giveawayID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[giveawayID] = append(r.participants[giveawayID], username)
	return nil
}

// Participants returns the recorded participant rows for a giveaway. Test
// helper, not part of the GiveawayRepository interface.
func (r *Repository) Participants(giveawayID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.participants[giveawayID]))
	copy(out, r.participants[giveawayID])
	return out
}

func (r *Repository) RecordWinner(_ context.Context, username, channel, prize string) (*models.WinnerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counterKey := channel + ":" + username
	r.winCounts[counterKey]++

	record := &models.WinnerRecord{
		ID:         uuid.New().String(),
		Username:   username,
		Channel:    channel,
		Prize:      prize,
		SelectedAt: time.Now(),
		TotalWins:  r.winCounts[counterKey],
	}
	r.winners[channel] = append([]*models.WinnerRecord{record}, r.winners[channel]...)

	copied := *record
	return &copied, nil
}

func (r *Repository) ListWinners(_ context.Context, channel string, limit int) ([]*models.WinnerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	records := r.winners[channel]
	if len(records) > limit {
		records = records[:limit]
	}

	out := make([]*models.WinnerRecord, 0, len(records))
	for _, record := range records {
		copied := *record
		out = append(out, &copied)
	}
	return out, nil
}

func (r *Repository) ListGiveaways(_ context.Context, channel string) ([]*models.GiveawayRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.GiveawayRecord, 0, len(r.history[channel]))
	for _, id := range r.history[channel] {
		if record, ok := r.giveaways[id]; ok {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *Repository) UpdateWinnerTelegram(_ context.Context, username, channel, telegram string) (*models.WinnerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.winners[channel] {
		if record.Username == username {
			record.Telegram = telegram
			copied := *record
			return &copied, nil
		}
	}
	return nil, repository.ErrWinnerNotFound
}
