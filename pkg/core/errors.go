package core

import "errors"

// ErrInvalidFilterClause reports a filter clause that cannot produce a
// comparison, such as one with an empty matchOn list.
var ErrInvalidFilterClause = errors.New("invalid filter clause")
