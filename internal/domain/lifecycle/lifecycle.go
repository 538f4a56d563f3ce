// Package lifecycle holds shared timing for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers, publishers and the navigator loop.
const DefaultTimeout = 10 * time.Second
