package service

import (
	"twitch-giveaway-backend/internal/common/errors"
	"twitch-giveaway-backend/internal/utils/random"
)

// PickWinner draws one participant with a discrete-uniform index. Calling it
// on an empty set is a caller bug and reported as NoParticipants.
//
// A reroll is simply another call on the same (or a caller-filtered) set; the
// selector itself never excludes previous winners.
func PickWinner(participants []string) (string, error) {
	if len(participants) == 0 {
		return "", errors.New(errors.ErrCodeNoParticipants, "No participants to select a winner from")
	}
	winner, err := random.Pick(participants)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to draw a winner")
	}
	return winner, nil
}
