package registry

import "errors"

var ErrCorruptDocument = errors.New("stored document is not valid JSON")
