package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// AfterFunc waits for the duration to elapse. Override in tests to drive
// paced emitters without real sleeps.
var AfterFunc = time.After

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// After is a thin wrapper around AfterFunc.
func After(d time.Duration) <-chan time.Time { return AfterFunc(d) }
