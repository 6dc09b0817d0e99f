// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

// Package sunlightwatch tells whether it is daylight or night at a place and
// reports day/night changes. Sun events come from suncalc; the optional
// geolocation looks the host up by its public IP address.
package sunlightwatch

import (
	"context"
	"sync"
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/GetSky/SunlightWatch/internal/infrastructure"
	"github.com/GetSky/SunlightWatch/internal/observability"
)

const (
	geolocationURL     = "http://ip-api.com/json/"
	geolocationTimeout = 5 * time.Second
)

type (
	Options  = application.Options
	Result   = application.Result
	Status   = application.Status
	Location = application.Location
	Source   = application.Source
	Tracker  = application.SunlightTracker
)

const (
	SourceFallback    = application.SourceFallback
	SourceExplicit    = application.SourceExplicit
	SourceGeolocation = application.SourceGeolocation
)

var defaultSunlight = sync.OnceValue(func() *application.Sunlight {
	return application.NewSunlight(application.SunlightConfig{
		Ephemeris:  infrastructure.NewEphemerisService(0),
		Geolocator: infrastructure.NewGeolocationService(geolocationURL, geolocationTimeout),
		Logger:     observability.NewLogger("warn"),
	})
})

// At returns Options for explicit coordinates.
func At(lat, long float64) Options {
	return application.At(lat, long)
}

func IsAfterSunrise(ctx context.Context, opts Options) bool {
	return defaultSunlight().IsAfterSunrise(ctx, opts)
}

func IsAfterSunset(ctx context.Context, opts Options) bool {
	return defaultSunlight().IsAfterSunset(ctx, opts)
}

func IsDaylight(ctx context.Context, opts Options) bool {
	return defaultSunlight().IsDaylight(ctx, opts)
}

// IsNightTime is true after sunset. Before sunrise it is false.
func IsNightTime(ctx context.Context, opts Options) bool {
	return defaultSunlight().IsNightTime(ctx, opts)
}

// Daylight is IsDaylight with the location it used and where it came from.
func Daylight(ctx context.Context, opts Options) Result {
	return defaultSunlight().Daylight(ctx, opts)
}

// CurrentStatus evaluates every predicate from one location lookup.
func CurrentStatus(ctx context.Context, opts Options) Status {
	return defaultSunlight().Status(ctx, opts)
}

// OnSunlightChange polls every interval until ctx is done. Register callbacks
// on the returned tracker.
func OnSunlightChange(ctx context.Context, interval time.Duration, opts Options) *Tracker {
	return application.OnSunlightChange(ctx, defaultSunlight(), interval, opts)
}
