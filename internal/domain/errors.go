package domain

import "errors"

var (
	ErrPlayerNotFound         = errors.New("player not found")
	ErrGuildNotFound          = errors.New("guild not found")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrInvariantViolation     = errors.New("invariant violation")
)
