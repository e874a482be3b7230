package results

import "errors"

// ErrEmpty marks reads from a store that has not merged any set yet.
var ErrEmpty = errors.New("no results merged")
