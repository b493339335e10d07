package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrEmptyInput   = errors.New("empty input text")
	ErrNoCompletion = errors.New("model returned no completion")
)
