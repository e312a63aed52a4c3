package models

// StartGiveawayRequest starts a giveaway on the authenticated channel.
type StartGiveawayRequest struct {
	Keyword string `json:"keyword" binding:"required"`
	Prize   string `json:"prize"`
}

// SelectWinnerRequest optionally overrides the participant set, e.g. with a
// filtered list when the caller wants to exclude a previous winner on reroll.
type SelectWinnerRequest struct {
	Participants []string `json:"participants"`
}

// UpdateTelegramRequest attaches a winner's Telegram contact to their record.
type UpdateTelegramRequest struct {
	Username string `json:"username" binding:"required"`
	Telegram string `json:"telegram" binding:"required"`
}

// EndGiveawayResponse reports how many sessions were closed and the winner of
// the last one that had participants.
type EndGiveawayResponse struct {
	Success    bool    `json:"success"`
	EndedCount int     `json:"ended_count"`
	Winner     *string `json:"winner"`
}
