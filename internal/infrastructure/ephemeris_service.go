// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package infrastructure

import (
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/sixdouglas/suncalc"
)

type ephemerisService struct {
	height float64
}

// NewEphemerisService computes sun events with suncalc for an observer at
// the given height in metres.
func NewEphemerisService(height float64) application.Ephemeris {
	return &ephemerisService{
		height: height,
	}
}

func (e *ephemerisService) GetTimes(at time.Time, loc application.Location) map[application.Event]time.Time {
	times := suncalc.GetTimesWithObserver(
		at,
		suncalc.Observer{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Height:    e.height,
			Location:  at.Location(),
		},
	)

	events := make(map[application.Event]time.Time, 2)
	for event, name := range map[application.Event]suncalc.DayTimeName{
		application.Sunrise: suncalc.Sunrise,
		application.Sunset:  suncalc.Sunset,
	} {
		// suncalc leaves the value zero when the sun never crosses the horizon
		if t, ok := times[name]; ok && !t.Value.IsZero() {
			events[event] = t.Value
		}
	}

	return events
}
