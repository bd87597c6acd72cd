package apperror

import "errors"

var (
	ErrUnauthenticated = errors.New("no resolvable participant")

	ErrSquareTaken       = errors.New("square is already taken")
	ErrSquareLocked      = errors.New("cannot modify a locked square")
	ErrParticipantLocked = errors.New("participant is already locked in")

	ErrOutOfRange      = errors.New("coordinate is out of range")
	ErrNoSquaresToLock = errors.New("participant has no squares to lock")
	ErrAlreadyLockedIn = errors.New("participant has already locked in")

	ErrConflict = errors.New("lost a concurrent update, re-read the grid")

	ErrNotFound = errors.New("not found")
)
