package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP statuses; raw storage errors are wrapped and never shown to callers.
var (
	// ErrNotFound covers both genuinely absent rows and rows excluded by
	// visibility or moderation rules, so callers cannot probe for the
	// existence of private or hidden content.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidArgument signals a malformed or unusable payload.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict signals a state transition that has already happened,
	// such as resolving an already-resolved report or two togglers racing
	// on the same ledger pair.
	ErrConflict = errors.New("conflict")
)
