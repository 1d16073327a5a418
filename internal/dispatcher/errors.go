package dispatcher

import "errors"

// ErrUnknownEventKind is returned by Apply for a Kind the dispatcher does
// not recognise; the feed decoder should never produce one, since
// unknown first-character tokens are rejected at parse time (§6), but
// Apply guards against it defensively.
var ErrUnknownEventKind = errors.New("dispatcher: unknown event kind")
