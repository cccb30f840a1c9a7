package cli

import "errors"

// Common CLI errors
var (
	errNoMatch = errors.New("no contract matches the request")
)
