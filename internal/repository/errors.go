// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios without inspecting driver error strings. For example,
// ErrAlreadyCheckedIn signals that a ticket's one-time check-in
// transition has already happened, while ErrEmailExists maps the
// MySQL duplicate-key error on users.email.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registration collides with an
// existing users.email value.
var ErrEmailExists = errors.New("email already exists")

// ErrEventNotFound is returned when no event row matches the lookup.
var ErrEventNotFound = errors.New("event not found")

// ErrTicketNotFound is returned when the caller holds no ticket for
// the event, or requests a ticket owned by someone else.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrAlreadyCheckedIn is returned when a ticket's checked_in flag is
// already set; the false→true transition happens at most once.
var ErrAlreadyCheckedIn = errors.New("ticket already checked in")

// ErrNotificationNotFound is returned when a notification does not
// exist or belongs to a different user.
var ErrNotificationNotFound = errors.New("notification not found")

// ErrTokenNotFound is returned when no active access token exists for
// a user, e.g. on a second logout.
var ErrTokenNotFound = errors.New("access token not found")
