package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxKeywordLength = 50
	MaxPrizeLength   = 200

	MinUsernameLength = 1
	MaxUsernameLength = 25
)

// Twitch login: letters, digits, underscores.
var twitchUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{1,25}$`)

// ValidateKeyword checks a giveaway trigger word. Keywords are matched as a
// whole message, so embedded whitespace would make them unmatchable.
func ValidateKeyword(keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return fmt.Errorf("keyword cannot be empty")
	}
	if len(keyword) > MaxKeywordLength {
		return fmt.Errorf("keyword cannot exceed %d characters", MaxKeywordLength)
	}
	if strings.ContainsAny(keyword, " \t") {
		return fmt.Errorf("keyword cannot contain whitespace")
	}
	return nil
}

// ValidatePrize checks a prize description.
func ValidatePrize(prize string) error {
	if len(strings.TrimSpace(prize)) > MaxPrizeLength {
		return fmt.Errorf("prize cannot exceed %d characters", MaxPrizeLength)
	}
	return nil
}

// ValidateUsername checks a chat username.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("username cannot exceed %d characters", MaxUsernameLength)
	}
	if !twitchUsernameRegex.MatchString(username) {
		return fmt.Errorf("username must contain only letters, numbers, and underscores")
	}
	return nil
}
