package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"twitch-giveaway-backend/internal/common/config"
	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/features/auth/models"
	"twitch-giveaway-backend/internal/features/auth/repository"
)

type Service struct {
	repo repository.SessionRepository
	cfg  *config.Config
}

func NewService(repo repository.SessionRepository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Login checks the admin credentials and creates a session whose channel is
// the login name. The dashboard operates on that channel from then on.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) == 1
	if !userOK || !passOK {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		Channel:   username,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to save session")
	}

	return session, nil
}

// Resolve maps a session id back to its session.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrSessionNotFound {
			return nil, errors.NewUnauthorizedError("session expired or unknown")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load session")
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
