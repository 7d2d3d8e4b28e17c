package game

import "time"

// Timer is a pending deferred call.
type Timer interface {
	Stop() bool
}

// AfterFunc runs f once after d without blocking the caller.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
