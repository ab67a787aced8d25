package probe

import "time"

// Defaults.
const (
	defaultWorkers = 4
	defaultTimeout = 10 * time.Second
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)
