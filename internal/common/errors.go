package common

import "errors"

// Business logic errors
var (
	ErrPostNotFound       = errors.New("post not found")
	ErrLinkNotFound       = errors.New("link not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)
