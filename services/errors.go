package services

import "errors"

// Error taxonomy for the progression core.
//
// ErrInvalidChallengeID / ErrInvalidModuleID are content-authoring defects and
// propagate hard. ErrStorageUnavailable wraps persistence failures and must be
// surfaced as "could not save progress". ErrMintUnavailable means the wallet
// or chain RPC is down; it never blocks learning progress. Validation failures
// are results, not errors.
var (
	ErrInvalidChallengeID = errors.New("invalid challenge id: must be between 0 and 15")
	ErrInvalidModuleID    = errors.New("invalid module id: must be between 0 and 3")
	ErrStorageUnavailable = errors.New("progress storage unavailable")
	ErrMintUnavailable    = errors.New("mint unavailable")

	ErrChallengeNotFound = errors.New("challenge not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrProfileNotFound   = errors.New("profile not found")
)
