package services

import "errors"

// Rejection reasons surfaced by the domain services. Every rejection names
// its specific cause so the controllers can return actionable messages.
var (
	// ErrNetIDTaken: the derived netid is already bound to a different account
	ErrNetIDTaken = errors.New("netid already linked to a different account")

	// ErrNotFound: the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the requester has no rights over the target resource
	ErrForbidden = errors.New("forbidden")

	// ErrInviteExpired / ErrInviteExhausted: invite code lifecycle
	ErrInviteExpired   = errors.New("invite code has expired")
	ErrInviteExhausted = errors.New("invite code has already been used")

	// ErrSelfRedemption: an owner cannot redeem their own invite code
	ErrSelfRedemption = errors.New("cannot redeem your own invite code")

	// Self-swipe variants, each rejected separately
	ErrSelfSwipe        = errors.New("delegate cannot swipe on their own behalf")
	ErrOwnerIsTarget    = errors.New("owner cannot be their own candidate")
	ErrDelegateIsTarget = errors.New("delegate cannot be their owner's candidate")

	// ErrNotAuthorized: no active delegation backs the proxy action
	ErrNotAuthorized = errors.New("no active delegation")

	// ErrInvalidDirection: swipe direction outside {left, right}
	ErrInvalidDirection = errors.New("direction must be left or right")
)
