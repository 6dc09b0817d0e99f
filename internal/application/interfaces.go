// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

import (
	"context"
	"time"
)

// Ephemeris computes the instants of the sun events of the day containing at.
type Ephemeris interface {
	GetTimes(at time.Time, loc Location) map[Event]time.Time
}

// Geolocator reports the current position of the host.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Location, error)
}

// NotifyService delivers day/night transitions to an outside channel.
type NotifyService interface {
	NotifyTransition(daylight bool, loc Location, at time.Time) error
}

// Recorder receives evaluation statistics. A nil Recorder is allowed.
type Recorder interface {
	Evaluated(event Event)
	LocationFallback()
	Transition(daylight bool)
}
