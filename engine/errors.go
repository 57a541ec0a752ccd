package engine

import "errors"

var (
	// ErrNotFound is returned when the referenced quiz or result does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSubmission is returned when submitted answer ids do not resolve
	// 1:1 against the quiz's answers.
	ErrInvalidSubmission = errors.New("invalid answer ids")
)
