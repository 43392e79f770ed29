package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrUnauthorized    = fmt.Errorf("authentication required")
	ErrForbidden       = fmt.Errorf("insufficient team role")
	ErrNotFound        = fmt.Errorf("resource not found")
	ErrInvalidToken    = fmt.Errorf("invalid invite token")
	ErrInviteExpired   = fmt.Errorf("invite link expired")
	ErrInviteExhausted = fmt.Errorf("invite usage count exceeded")
	ErrAlreadyMember   = fmt.Errorf("already a team member")
	ErrBadRequest      = fmt.Errorf("bad request")
	ErrWorkerPanic     = fmt.Errorf("worker panic")
)

// CodeOf maps a domain error to the wire-level code surfaced on the socket
// "error" event and in REST responses. Unknown errors are reported as
// INTERNAL so callers never leak internals to clients.
func CodeOf(err error) string {
	switch {
	case stderrors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case stderrors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case stderrors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case stderrors.Is(err, ErrInvalidToken):
		return "INVALID_TOKEN"
	case stderrors.Is(err, ErrInviteExpired):
		return "EXPIRED"
	case stderrors.Is(err, ErrInviteExhausted):
		return "EXHAUSTED_USAGE"
	case stderrors.Is(err, ErrAlreadyMember):
		return "ALREADY_MEMBER"
	case stderrors.Is(err, ErrBadRequest):
		return "BAD_REQUEST"
	default:
		return "INTERNAL"
	}
}
