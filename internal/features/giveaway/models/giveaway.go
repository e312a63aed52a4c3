package models

import (
	"strings"
	"time"
)

// SessionState is the lifecycle state of a giveaway session.
type SessionState string

const (
	SessionStateActive SessionState = "active"
	SessionStateEnded  SessionState = "ended"
)

// Session is the in-memory representation of one giveaway's live state. It is
// authoritative for gameplay; the persistence store is a best-effort mirror.
//
// Sessions are not self-synchronized: all mutation goes through the giveaway
// manager, which serializes access. Do not touch a Session outside of it.
type Session struct {
	ID        string
	Channel   string
	Keyword   string // normalized to lowercase at creation
	Prize     string
	State     SessionState
	StartedAt time.Time
	EndedAt   time.Time

	// Winner is the most recently selected winner; Winners accumulates every
	// draw of this session so rerolls can exclude previous picks.
	Winner  string
	Winners []string

	participants []string // insertion order, for display
	members      map[string]struct{}
}

// NewSession creates an active session with a normalized keyword.
func NewSession(id, channel, keyword, prize string) *Session {
	return &Session{
		ID:        id,
		Channel:   channel,
		Keyword:   NormalizeKeyword(keyword),
		Prize:     prize,
		State:     SessionStateActive,
		StartedAt: time.Now(),
		members:   make(map[string]struct{}),
	}
}

// NormalizeKeyword lowercases and trims a keyword; matching is exact equality
// on the normalized form.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Matches reports whether a chat message consists solely of the keyword,
// case-insensitively. Substring containment is not a match.
func (s *Session) Matches(text string) bool {
	return NormalizeKeyword(text) == s.Keyword
}

// AddParticipant registers a user once. A duplicate is a silent no-op, not an
// error: the same viewer typing the keyword twice must not produce a second
// entry or a second notification.
func (s *Session) AddParticipant(username string) bool {
	if _, ok := s.members[username]; ok {
		return false
	}
	s.members[username] = struct{}{}
	s.participants = append(s.participants, username)
	return true
}

// HasParticipant reports membership.
func (s *Session) HasParticipant(username string) bool {
	_, ok := s.members[username]
	return ok
}

// Participants returns the registered users in insertion order.
func (s *Session) Participants() []string {
	out := make([]string, len(s.participants))
	copy(out, s.participants)
	return out
}

// ParticipantCount returns the number of registered users.
func (s *Session) ParticipantCount() int {
	return len(s.participants)
}

// RecordWin stores a drawn winner on the session without ending it.
func (s *Session) RecordWin(username string) {
	s.Winner = username
	s.Winners = append(s.Winners, username)
}

// End transitions the session to its terminal state.
func (s *Session) End() {
	s.State = SessionStateEnded
	s.EndedAt = time.Now()
}

// IsActive reports whether the session still accepts participants.
func (s *Session) IsActive() bool {
	return s.State == SessionStateActive
}

// SessionResponse is the JSON projection of a session.
type SessionResponse struct {
	ID                string       `json:"id"`
	Channel           string       `json:"channel"`
	Keyword           string       `json:"keyword"`
	Prize             string       `json:"prize"`
	State             SessionState `json:"state"`
	StartedAt         time.Time    `json:"started_at"`
	EndedAt           *time.Time   `json:"ended_at,omitempty"`
	Participants      []string     `json:"participants"`
	ParticipantsCount int          `json:"participants_count"`
	Winner            string       `json:"winner,omitempty"`
}

// Snapshot projects the session for API responses and observer payloads.
func (s *Session) Snapshot() *SessionResponse {
	resp := &SessionResponse{
		ID:                s.ID,
		Channel:           s.Channel,
		Keyword:           s.Keyword,
		Prize:             s.Prize,
		State:             s.State,
		StartedAt:         s.StartedAt,
		Participants:      s.Participants(),
		ParticipantsCount: s.ParticipantCount(),
		Winner:            s.Winner,
	}
	if !s.EndedAt.IsZero() {
		endedAt := s.EndedAt
		resp.EndedAt = &endedAt
	}
	return resp
}
