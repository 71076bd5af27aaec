package parser

import "errors"

// ErrNoDate marks a block with no resolvable date token. Such a block is
// dropped entirely; it never yields a partial event.
var ErrNoDate = errors.New("no date token found in event block")
