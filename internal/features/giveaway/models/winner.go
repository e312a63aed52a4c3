package models

import "time"

// GiveawayRecord is the durable row mirroring a session in the store.
type GiveawayRecord struct {
	ID        string     `json:"id"`
	Channel   string     `json:"channel"`
	Keyword   string     `json:"keyword"`
	Prize     string     `json:"prize"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Winner    string     `json:"winner,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// WinnerRecord is one persisted win. TotalWins is a running per-user counter
// the store computes at insert time; it is read-modify-write across the
// external store and therefore best-effort, not transactional.
type WinnerRecord struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Channel    string    `json:"channel"`
	Prize      string    `json:"prize"`
	Telegram   string    `json:"telegram,omitempty"`
	SelectedAt time.Time `json:"selected_at"`
	TotalWins  int64     `json:"total_wins"`
}
