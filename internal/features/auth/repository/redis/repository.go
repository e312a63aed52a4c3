package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"twitch-giveaway-backend/internal/features/auth/models"
	"twitch-giveaway-backend/internal/features/auth/repository"
)

const (
	keyPrefixSession  = "session:"
	sessionExpiration = 7 * 24 * time.Hour
)

type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) repository.SessionRepository {
	return &Repository{client: client}
}

func makeSessionKey(id string) string {
	return keyPrefixSession + id
}

func (r *Repository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return r.client.Set(ctx, makeSessionKey(session.ID), data, sessionExpiration).Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := r.client.Get(ctx, makeSessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, makeSessionKey(id)).Err()
}
