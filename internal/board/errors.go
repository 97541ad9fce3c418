package board

import "errors"

// ErrInvalidFEN is wrapped by every error FromFEN returns, so callers can
// test for it with errors.Is.
var ErrInvalidFEN = errors.New("board: invalid FEN")
