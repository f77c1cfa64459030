package fetch

import "errors"

var errNoSource = errors.New("no source configured")
