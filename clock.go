package main

import "time"

// Ticker delivers ticks at a fixed cadence until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests inject a manual clock.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }
