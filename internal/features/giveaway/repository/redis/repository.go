package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"twitch-giveaway-backend/internal/features/giveaway/models"
	"twitch-giveaway-backend/internal/features/giveaway/repository"
)

const (
	keyPrefixGiveaway        = "giveaway:"
	keyPrefixWinner          = "winner:"
	keyPrefixChannelHistory  = "giveaways:channel:"
	keyPrefixChannelWinners  = "winners:channel:"
	keyPrefixUserWinsCounter = "wins:total:"
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisGiveawayRepository(client *redis.Client) repository.GiveawayRepository {
	return &redisRepository{client: client}
}

func makeGiveawayKey(id string) string {
	return keyPrefixGiveaway + id
}

func makeWinnerKey(id string) string {
	return keyPrefixWinner + id
}

func makeChannelHistoryKey(channel string) string {
	return keyPrefixChannelHistory + channel
}

func makeChannelWinnersKey(channel string) string {
	return keyPrefixChannelWinners + channel
}

func makeWinsCounterKey(channel, username string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefixUserWinsCounter, channel, username)
}

func (r *redisRepository) CreateGiveaway(ctx context.Context, channel, keyword, prize string) (*models.GiveawayRecord, error) {
	record := &models.GiveawayRecord{
		ID:        uuid.New().String(),
		Channel:   channel,
		Keyword:   keyword,
		Prize:     prize,
		StartedAt: time.Now(),
		IsActive:  true,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal giveaway: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeGiveawayKey(record.ID), data, 0)
	pipe.LPush(ctx, makeChannelHistoryKey(channel), record.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *redisRepository) getGiveaway(ctx context.Context, id string) (*models.GiveawayRecord, error) {
	data, err := r.client.Get(ctx, makeGiveawayKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrGiveawayNotFound
	}
	if err != nil {
		return nil, err
	}

	var record models.GiveawayRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *redisRepository) EndGiveaway(ctx context.Context, giveawayID, winner string) error {
	record, err := r.getGiveaway(ctx, giveawayID)
	if err != nil {
		return err
	}

	now := time.Now()
	record.IsActive = false
	record.EndedAt = &now
	record.Winner = winner

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal giveaway: %w", err)
	}
	return r.client.Set(ctx, makeGiveawayKey(giveawayID), data, 0).Err()
}

func (r *redisRepository) AddParticipant(ctx context.Context, giveawayID, username string) error {
	return r.client.SAdd(ctx, makeGiveawayKey(giveawayID)+":participants", username).Err()
}

func (r *redisRepository) RecordWinner(ctx context.Context, username, channel, prize string) (*models.WinnerRecord, error) {
	totalWins, err := r.client.Incr(ctx, makeWinsCounterKey(channel, username)).Result()
	if err != nil {
		return nil, err
	}

	record := &models.WinnerRecord{
		ID:         uuid.New().String(),
		Username:   username,
		Channel:    channel,
		Prize:      prize,
		SelectedAt: time.Now(),
		TotalWins:  totalWins,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal winner: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, makeWinnerKey(record.ID), data, 0)
	pipe.LPush(ctx, makeChannelWinnersKey(channel), record.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *redisRepository) ListWinners(ctx context.Context, channel string, limit int) ([]*models.WinnerRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	ids, err := r.client.LRange(ctx, makeChannelWinnersKey(channel), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	winners := make([]*models.WinnerRecord, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, makeWinnerKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		var record models.WinnerRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, err
		}
		winners = append(winners, &record)
	}
	return winners, nil
}

func (r *redisRepository) ListGiveaways(ctx context.Context, channel string) ([]*models.GiveawayRecord, error) {
	ids, err := r.client.LRange(ctx, makeChannelHistoryKey(channel), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	giveaways := make([]*models.GiveawayRecord, 0, len(ids))
	for _, id := range ids {
		record, err := r.getGiveaway(ctx, id)
		if err == repository.ErrGiveawayNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		giveaways = append(giveaways, record)
	}
	return giveaways, nil
}

func (r *redisRepository) UpdateWinnerTelegram(ctx context.Context, username, channel, telegram string) (*models.WinnerRecord, error) {
	ids, err := r.client.LRange(ctx, makeChannelWinnersKey(channel), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	// Ids are newest first, so the first match is the latest win.
	for _, id := range ids {
		data, err := r.client.Get(ctx, makeWinnerKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		var record models.WinnerRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, err
		}
		if record.Username != username {
			continue
		}

		record.Telegram = telegram
		updated, err := json.Marshal(&record)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal winner: %w", err)
		}
		if err := r.client.Set(ctx, makeWinnerKey(id), updated, 0).Err(); err != nil {
			return nil, err
		}
		return &record, nil
	}

	return nil, repository.ErrWinnerNotFound
}
