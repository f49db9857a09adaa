// Package services defines the business logic for discovery, swipes,
// matching, and conversations. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer. Note that ErrDuplicateLike and ErrMatchExists
// signal idempotent re-application, not misuse: handlers remap them to
// success-shaped responses.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pawmatch/go-dating-backend/internal/repo"
)

var (
	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrSelfSwipe is returned when a user tries to like or pass on their
	// own profile.
	ErrSelfSwipe = errors.New("cannot swipe on own profile")

	// ErrDuplicateLike is returned when the ordered (liker, liked) pair has
	// already been recorded. Callers treat it as a no-op, not a failure.
	ErrDuplicateLike = errors.New("like already recorded")

	// ErrMatchExists is returned when a match already exists for the pair.
	// Callers treat it as "match already exists, proceed as success".
	ErrMatchExists = errors.New("match already exists")

	// ErrNotParticipant is returned when a user tries to read or write a
	// conversation they are not part of. Never retried.
	ErrNotParticipant = errors.New("not a participant of this match")

	// ErrEmptyMessage is returned when a message body is empty or
	// whitespace-only. User-correctable.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a message exceeds the configured
	// maximum length.
	ErrMessageTooLong = errors.New("message too long")

	// ErrDogAgeMonths is returned when a dog's month component falls
	// outside [0,11].
	ErrDogAgeMonths = errors.New("dog age months must be between 0 and 11")

	// ErrInvalidGender is returned when a gender value is outside the
	// allowed enum for the record being written.
	ErrInvalidGender = errors.New("invalid gender value")

	// ErrInvalidDogSize is returned when a dog size is not one of
	// small/medium/large.
	ErrInvalidDogSize = errors.New("invalid dog size")

	// ErrProfileExists is returned when registration is attempted for an id
	// that already has a profile.
	ErrProfileExists = errors.New("profile already exists")

	// ErrInvalidDisplayName is returned when a display name (or dog name)
	// is blank after trimming.
	ErrInvalidDisplayName = errors.New("invalid display name")
)

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
