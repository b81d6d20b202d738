package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common read failures.
var (
	// ErrTopicNotFound is returned when a topic lookup finds no record.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrNoTopicID marks the synthetic read failure used when a screen is
	// constructed without a topic ID in its navigation arguments.
	ErrNoTopicID = errors.New("no topic id provided")
)
