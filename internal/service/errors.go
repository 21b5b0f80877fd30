package service

import "errors"

// ErrWrongPassword is returned by Login when the password does not
// match the stored hash. Handlers map it to 401.
var ErrWrongPassword = errors.New("wrong password")

// ErrSessionRevoked is returned by Validate when the access token's
// backing row is revoked or past its expiry.
var ErrSessionRevoked = errors.New("session revoked or expired")

// ErrNotOwner is returned when a user attempts to modify an event
// they do not own. Handlers map it to 401, matching the ownership
// taxonomy of the API.
var ErrNotOwner = errors.New("not the event owner")

// ErrCannotDeactivateAdmin is returned when an admin account is the
// target of a deactivation. Handlers map it to 400.
var ErrCannotDeactivateAdmin = errors.New("cannot deactivate admin account")

// ErrPurchaseFailed is the generic purchase error surfaced to
// callers; the specific cause is logged with a trace id.
var ErrPurchaseFailed = errors.New("ticket purchase failed, please retry")
