package model

import "time"

// Shared defaults used by the relay binary and its packages.
const (
	DefaultContextName    = "AWS Lambda"
	DefaultForwardTimeout = 5 * time.Second
	DefaultMaxBodyBytes   = 8 << 20
)
