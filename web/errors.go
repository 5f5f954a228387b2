package web

import "errors"

// ErrNotReady is returned when an analysis' groups are requested before the
// worker has computed them.
var ErrNotReady = errors.New("analysis not computed yet")
