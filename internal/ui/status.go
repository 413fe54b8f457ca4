// Package ui draws the on-screen status readout.
package ui

import "time"

// Status carries the values shown on the readout.
type Status struct {
	TPS         float32
	Delay       time.Duration
	Paused      bool
	IgnoreDelay bool
	Strategy    string
}
