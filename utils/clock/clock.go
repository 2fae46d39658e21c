package clock

import (
	"sync"
	"time"
)

type Clock struct {
	start time.Time
}

var (
	once        sync.Once
	systemClock *Clock
	startTime   time.Time
)

// Set initializes the system clock. An explicit start time may
// be supplied for deterministic tests; otherwise wall time is used.
func Set(startTimes ...time.Time) {
	if len(startTimes) != 0 {
		startTime = time.Now().UTC()
		systemClock = &Clock{start: startTimes[0]}
	} else {
		clock()
	}
}

func clock() *Clock {
	once.Do(func() {
		startTime = time.Now().UTC()
		systemClock = &Clock{start: startTime}
	})
	return systemClock
}

func Now() time.Time {
	return clock().start.Add(time.Now().UTC().Sub(startTime))
}

func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}
