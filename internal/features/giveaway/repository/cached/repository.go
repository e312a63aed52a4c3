// Package cached decorates a GiveawayRepository with a read cache for the
// winners and history lists, which the dashboard polls far more often than
// they change.
package cached

import (
	"context"
	"fmt"
	"time"

	"twitch-giveaway-backend/internal/common/cache"
	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/repository"
)

const listTTL = 30 * time.Second

type cachedRepository struct {
	repository.GiveawayRepository
	cache *cache.Cache
}

func New(inner repository.GiveawayRepository, c *cache.Cache) repository.GiveawayRepository {
	return &cachedRepository{GiveawayRepository: inner, cache: c}
}

func winnersKey(channel string, limit int) string {
	return fmt.Sprintf("cache:winners:%s:%d", channel, limit)
}

func giveawaysKey(channel string) string {
	return fmt.Sprintf("cache:giveaways:%s", channel)
}

func (r *cachedRepository) ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error) {
	var winners []*models.WinnerRecord
	err := r.cache.GetOrSet(ctx, winnersKey(channel, limit), &winners, listTTL, func() (interface{}, error) {
		return r.GiveawayRepository.ListWinners(ctx, channel, limit)
	})
	return winners, err
}

func (r *cachedRepository) ListGiveaways(ctx context.Context, channel string) ([]*models.GiveawayRecord, error) {
	var giveaways []*models.GiveawayRecord
	err := r.cache.GetOrSet(ctx, giveawaysKey(channel), &giveaways, listTTL, func() (interface{}, error) {
		return r.GiveawayRepository.ListGiveaways(ctx, channel)
	})
	return giveaways, err
}

func (r *cachedRepository) CreateGiveaway(ctx context.Context, channel, keyword, prize string) (*models.GiveawayRecord, error) {
	record, err := r.GiveawayRepository.CreateGiveaway(ctx, channel, keyword, prize)
	if err == nil {
		_ = r.cache.Delete(ctx, giveawaysKey(channel))
	}
	return record, err
}

func (r *cachedRepository) EndGiveaway(ctx context.Context, giveawayID, winner string) error {
	err := r.GiveawayRepository.EndGiveaway(ctx, giveawayID, winner)
	if err == nil {
		// The giveaway id does not carry the channel, so drop every history
		// list instead of resolving it with an extra read.
		_ = r.cache.DeletePattern(ctx, "cache:giveaways:*")
	}
	return err
}

func (r *cachedRepository) RecordWinner(ctx context.Context, username, channel, prize string) (*models.WinnerRecord, error) {
	record, err := r.GiveawayRepository.RecordWinner(ctx, username, channel, prize)
	if err == nil {
		_ = r.cache.DeletePattern(ctx, fmt.Sprintf("cache:winners:%s:*", channel))
	}
	return record, err
}

func (r *cachedRepository) UpdateWinnerTelegram(ctx context.Context, username, channel, telegram string) (*models.WinnerRecord, error) {
	record, err := r.GiveawayRepository.UpdateWinnerTelegram(ctx, username, channel, telegram)
	if err == nil {
		_ = r.cache.DeletePattern(ctx, fmt.Sprintf("cache:winners:%s:*", channel))
	}
	return record, err
}
