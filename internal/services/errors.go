package services

import "errors"

// ErrValidation signals malformed input rejected before touching the store.
// Handlers map it to a 400 with the wrapped message.
var ErrValidation = errors.New("validation failed")
