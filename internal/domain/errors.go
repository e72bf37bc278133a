package domain

import "errors"

var (
	ErrUnauthorized    = errors.New("openrouter rejected credentials")
	ErrEmptyReply      = errors.New("model returned an empty reply")
	ErrMalformedReply  = errors.New("model response could not be parsed")
	ErrModelsExhausted = errors.New("all available models failed or are cooling down")
	ErrActiveRequest   = errors.New("active request exists")
)
