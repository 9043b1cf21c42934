package session

import "errors"

// ErrNoSession is returned when an operation that requires an authenticated
// viewer is invoked anonymously.
var ErrNoSession = errors.New("no active session")
