package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoData indicates the bin feed returned no readings.
	ErrNoData = errors.New("no bin data available")

	// ErrFeedUnavailable indicates the bin feed could not be reached.
	ErrFeedUnavailable = errors.New("bin feed unavailable")

	// ErrNotifierUnavailable indicates no notifier is configured.
	ErrNotifierUnavailable = errors.New("notifier unavailable")

	// ErrNotifierRejected indicates the SMS provider refused the message.
	ErrNotifierRejected = errors.New("notifier rejected message")

	// ErrRateLimited indicates the SMS provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnknownSetting indicates a config key that settings do not recognise.
	ErrUnknownSetting = errors.New("unknown setting")
)
