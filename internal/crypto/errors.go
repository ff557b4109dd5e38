package crypto

import "errors"

// ErrInvalidInputLength is returned when a block, schedule, key or output
// buffer does not have the exact size the transform requires.
var ErrInvalidInputLength = errors.New("crypto: invalid input length")
