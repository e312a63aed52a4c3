package memory

import (
	"context"
	"sync"

	"twitch-giveaway-backend/internal/features/auth/models"
	"twitch-giveaway-backend/internal/features/auth/repository"
)

// Repository keeps sessions in memory. Used when the process runs without
// Redis and in tests.
type Repository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewRepository() repository.SessionRepository {
	return &Repository{sessions: make(map[string]*models.Session)}
}

func (r *Repository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
