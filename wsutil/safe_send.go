package wsutil

import "log/slog"

// SafeSend sends v to a channel without blocking and without panicking if
// the channel is closed. It reports whether v was delivered. Panics are
// recovered and logged for debugging.
func SafeSend[T any](ch chan T, v T) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("SafeSend recovered panic", "tag", "wsutil", "panic", r)
			sent = false
		}
	}()
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}
