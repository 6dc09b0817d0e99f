// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

import "time"

type Event string

const (
	Sunrise Event = "sunrise"
	Sunset  Event = "sunset"
)

// Equator / prime meridian, used for every coordinate nobody supplied.
const (
	DefaultLatitude  = 0.0
	DefaultLongitude = 0.0
)

type Location struct {
	Latitude  float64
	Longitude float64
}

// Source tells where the coordinates of an evaluation came from.
type Source int

const (
	SourceFallback Source = iota
	SourceExplicit
	SourceGeolocation
)

func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceGeolocation:
		return "geolocation"
	default:
		return "fallback"
	}
}

// Options configures a single evaluation. The zero value evaluates "now" at
// the default location without geolocation.
type Options struct {
	Latitude       *float64
	Longitude      *float64
	UseGeolocation bool
	ReferenceTime  time.Time
}

// At returns Options with explicit coordinates.
func At(lat, long float64) Options {
	return Options{Latitude: &lat, Longitude: &long}
}

// WithTime returns a copy of o evaluated at t.
func (o Options) WithTime(t time.Time) Options {
	o.ReferenceTime = t
	return o
}

// WithGeolocation returns a copy of o that asks the geolocator first.
func (o Options) WithGeolocation() Options {
	o.UseGeolocation = true
	return o
}

// Result is a predicate value tagged with the location it was computed for.
type Result struct {
	Value    bool
	Location Location
	Source   Source
}

// Fallback reports whether a default coordinate was used.
func (r Result) Fallback() bool {
	return r.Source == SourceFallback
}
