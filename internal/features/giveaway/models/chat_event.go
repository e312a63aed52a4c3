package models

import (
	"strings"
	"time"
)

// SystemUsername marks synthetic connection-status events injected by the
// backend itself. They are kept off the observer-facing chat feed.
const SystemUsername = "system"

// ChatEvent is one inbound chat message from the transport. Transient: the
// core never persists raw chat.
type ChatEvent struct {
	Channel   string            `json:"channel"`
	Username  string            `json:"username"`
	Text      string            `json:"message"`
	Tags      map[string]string `json:"-"`
	Timestamp time.Time         `json:"timestamp"`
}

// IsSystem reports whether the event is a synthetic status message rather
// than a real viewer line.
func (e ChatEvent) IsSystem() bool {
	return e.Username == SystemUsername
}

// IsModerator reports whether the sender may run giveaway commands: the
// channel broadcaster or a moderator, per the chat transport's tags.
func (e ChatEvent) IsModerator() bool {
	if e.Tags == nil {
		return false
	}
	if e.Tags["mod"] == "1" {
		return true
	}
	// badges look like "broadcaster/1,subscriber/12"
	for _, badge := range strings.Split(e.Tags["badges"], ",") {
		if name, _, _ := strings.Cut(badge, "/"); name == "broadcaster" {
			return true
		}
	}
	return false
}
