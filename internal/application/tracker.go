// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

import (
	"context"
	"sync"
	"time"
)

const DefaultPollInterval = time.Second

type State interface {
	check(daylight bool) bool
	SetTracker(tracker *SunlightTracker)
	Daylight() bool
}

// SunlightTracker polls the daylight predicate and calls the registered
// callbacks when it flips. All registrations share one ticker.
type SunlightTracker struct {
	sunlight *Sunlight
	opts     Options
	interval time.Duration

	turnedDay   State
	turnedNight State

	mu           sync.Mutex
	currentState State
	location     Location
	onNight      []func()
	onDaylight   []func()
	onToggle     []func(bool)
}

// NewSunlightTracker records the current daylight state for opts. Polling
// starts with Run.
func NewSunlightTracker(ctx context.Context, sunlight *Sunlight, interval time.Duration, opts Options) *SunlightTracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	t := &SunlightTracker{
		sunlight:    sunlight,
		opts:        opts,
		interval:    interval,
		turnedDay:   NewDaylightState(),
		turnedNight: NewNightState(),
	}
	t.turnedDay.SetTracker(t)
	t.turnedNight.SetTracker(t)

	res := sunlight.Daylight(ctx, opts)
	t.location = res.Location
	if res.Value {
		t.switchState(t.turnedDay)
	} else {
		t.switchState(t.turnedNight)
	}

	return t
}

// OnSunlightChange starts a tracker that polls until ctx is done.
func OnSunlightChange(ctx context.Context, sunlight *Sunlight, interval time.Duration, opts Options) *SunlightTracker {
	t := NewSunlightTracker(ctx, sunlight, interval, opts)
	go func() {
		_ = t.Run(ctx)
	}()
	return t
}

// OnNight registers fn for every daylight to night transition.
func (t *SunlightTracker) OnNight(fn func()) *SunlightTracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onNight = append(t.onNight, fn)
	return t
}

// OnDaylight registers fn for every night to daylight transition.
func (t *SunlightTracker) OnDaylight(fn func()) *SunlightTracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDaylight = append(t.onDaylight, fn)
	return t
}

// OnToggle registers fn for every transition. fn receives the new state.
func (t *SunlightTracker) OnToggle(fn func(daylight bool)) *SunlightTracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = append(t.onToggle, fn)
	return t
}

func (t *SunlightTracker) IsDaylight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentState.Daylight()
}

// Location is where the last evaluation was computed.
func (t *SunlightTracker) Location() Location {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.location
}

// Notify sends every transition to the notifiers together with the location
// it was computed for. Failures are logged.
func (t *SunlightTracker) Notify(notifiers ...NotifyService) *SunlightTracker {
	return t.OnToggle(func(daylight bool) {
		loc := t.Location()
		now := t.sunlight.clock.Now()
		for _, n := range notifiers {
			if err := n.NotifyTransition(daylight, loc, now); err != nil {
				t.sunlight.log.Error().Err(err).Msg("notification failed")
			}
		}
	})
}

func (t *SunlightTracker) Interval() time.Duration {
	return t.interval
}

// Run re-evaluates daylight every interval until ctx is done.
func (t *SunlightTracker) Run(ctx context.Context) error {
	t.sunlight.log.Info().
		Dur("interval", t.interval).
		Bool("daylight", t.IsDaylight()).
		Msg("sunlight tracker started")

	ticker := t.sunlight.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.sunlight.log.Info().Msg("sunlight tracker stopped")
			return nil
		case <-ticker.Chan():
			t.Check(ctx)
		}
	}
}

// Check evaluates daylight once and dispatches callbacks if the state changed.
func (t *SunlightTracker) Check(ctx context.Context) {
	res := t.sunlight.Daylight(ctx, t.opts)
	daylight := res.Value

	t.mu.Lock()
	t.location = res.Location
	if !t.currentState.check(daylight) {
		t.mu.Unlock()
		return
	}
	edge := t.onNight
	if daylight {
		edge = t.onDaylight
	}
	edge = append([]func(){}, edge...)
	toggle := append([]func(bool){}, t.onToggle...)
	t.mu.Unlock()

	t.sunlight.log.Info().Bool("daylight", daylight).Msg("sunlight changed")
	if t.sunlight.recorder != nil {
		t.sunlight.recorder.Transition(daylight)
	}

	for _, fn := range edge {
		fn()
	}
	for _, fn := range toggle {
		fn(daylight)
	}
}

// switchState must be called with mu held or before the tracker is shared.
func (t *SunlightTracker) switchState(s State) {
	t.currentState = s
}
