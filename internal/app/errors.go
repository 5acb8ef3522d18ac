// Package app implements the primary-port services on top of the repository
// interfaces. Services validate input, delegate the math to the core packages
// and map records to port DTOs. "Now" is read once per operation so a
// computation stays internally consistent.
package app

import "errors"

var (
	// ErrInvalidRange is returned when a date range has its end before its
	// start or a bound fails to parse.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNoActiveSleep is returned when ending a sleep while none is open.
	ErrNoActiveSleep = errors.New("no sleep in progress")

	// ErrNoActiveWaking is returned when ending a waking while none is open.
	ErrNoActiveWaking = errors.New("no night waking in progress")

	// ErrNoNightSleep is returned when starting a waking outside night sleep.
	ErrNoNightSleep = errors.New("no night sleep in progress")
)
