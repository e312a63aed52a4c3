package models

import "time"

// Session binds a browser cookie to the channel the dashboard operates on.
// The OAuth exchange that proves channel ownership happens upstream; by the
// time a session exists the channel identity is already resolved.
type Session struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest is the admin login form.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
