package viewerrors

import (
	"errors"
	"fmt"
)

// Protocol violation sentinels. Shared by golf, layout, view and ws so that
// callers can test with errors.Is without import cycles.
var (
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrUnknownSeat         = errors.New("unknown seat")
	ErrDuplicateSeat       = errors.New("duplicate seat")
	ErrDuplicatePlayer     = errors.New("duplicate player id")
	ErrUnknownPhase        = errors.New("unknown phase")
	ErrUnknownAction       = errors.New("unknown action")
	ErrInvalidCard         = errors.New("invalid card")
	ErrInvalidZone         = errors.New("invalid zone token")
	ErrHandIndexOutOfRange = errors.New("hand index out of range")
	ErrMissingHandIndex    = errors.New("event requires a hand index")
	ErrHandTooLarge        = errors.New("hand larger than hand size")
	ErrNotLoaded           = errors.New("no snapshot loaded yet")
	ErrUnknownMessage      = errors.New("unknown message type")
)

// ProtocolError reports a notification that cannot be applied. The view is
// left untouched when one is returned.
type ProtocolError struct {
	Notification string `json:"notification"`
	Reason       string `json:"reason"`
	Err          error  `json:"-"`
}

func (e *ProtocolError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("protocol error(%s): %s", e.Notification, e.Reason)
	}
	return fmt.Sprintf("protocol error(%s): %s: %v", e.Notification, e.Reason, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Protocol builds a ProtocolError for the named notification.
func Protocol(notification string, err error, format string, args ...any) *ProtocolError {
	return &ProtocolError{
		Notification: notification,
		Reason:       fmt.Sprintf(format, args...),
		Err:          err,
	}
}
