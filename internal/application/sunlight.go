// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type SunlightConfig struct {
	Ephemeris  Ephemeris
	Geolocator Geolocator // nil when the host has no geolocation
	Clock      clockwork.Clock
	Logger     zerolog.Logger
	Recorder   Recorder
}

// Sunlight answers day/night questions for a location and instant.
type Sunlight struct {
	ephemeris  Ephemeris
	geolocator Geolocator
	clock      clockwork.Clock
	log        zerolog.Logger
	recorder   Recorder
}

func NewSunlight(cfg SunlightConfig) *Sunlight {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Sunlight{
		ephemeris:  cfg.Ephemeris,
		geolocator: cfg.Geolocator,
		clock:      clock,
		log:        cfg.Logger,
		recorder:   cfg.Recorder,
	}
}

// IsAfter reports whether reference is at or after event, comparing hours and
// then minutes on the reference's wall clock. Seconds and dates are ignored.
func IsAfter(reference, event time.Time) bool {
	event = event.In(reference.Location())

	if reference.Hour() != event.Hour() {
		return reference.Hour() > event.Hour()
	}

	return reference.Minute() >= event.Minute()
}

// Check reports whether the reference instant of opts is at or after event.
func (s *Sunlight) Check(ctx context.Context, event Event, opts Options) Result {
	opts = s.pin(opts)
	loc, source := s.resolveLocation(ctx, opts)

	times := s.ephemeris.GetTimes(opts.ReferenceTime, loc)
	if s.recorder != nil {
		s.recorder.Evaluated(event)
	}

	return Result{
		Value:    isAfterEvent(opts.ReferenceTime, times, event),
		Location: loc,
		Source:   source,
	}
}

// Polar day and polar night have no sunrise or sunset. Nothing is "after" a
// missing event.
func isAfterEvent(reference time.Time, times map[Event]time.Time, event Event) bool {
	at, ok := times[event]
	if !ok || at.IsZero() {
		return false
	}
	return IsAfter(reference, at)
}

func (s *Sunlight) AfterSunrise(ctx context.Context, opts Options) Result {
	return s.Check(ctx, Sunrise, opts)
}

func (s *Sunlight) AfterSunset(ctx context.Context, opts Options) Result {
	return s.Check(ctx, Sunset, opts)
}

// Daylight is true between sunrise (inclusive) and sunset (exclusive). Both
// checks run concurrently against the same reference instant.
func (s *Sunlight) Daylight(ctx context.Context, opts Options) Result {
	opts = s.pin(opts)

	var rise, set Result
	var g errgroup.Group
	g.Go(func() error {
		rise = s.AfterSunrise(ctx, opts)
		return nil
	})
	g.Go(func() error {
		set = s.AfterSunset(ctx, opts)
		return nil
	})
	_ = g.Wait()

	source := rise.Source
	if set.Source == SourceFallback {
		source = SourceFallback
	}

	return Result{
		Value:    rise.Value && !set.Value,
		Location: rise.Location,
		Source:   source,
	}
}

// Status holds every predicate for one instant.
type Status struct {
	ReferenceTime time.Time
	Location      Location
	Source        Source
	AfterSunrise  bool
	AfterSunset   bool
	Daylight      bool
	Night         bool
}

// Status evaluates all predicates from a single location lookup and ephemeris
// call, so they always agree on where they were computed.
func (s *Sunlight) Status(ctx context.Context, opts Options) Status {
	opts = s.pin(opts)
	loc, source := s.resolveLocation(ctx, opts)

	times := s.ephemeris.GetTimes(opts.ReferenceTime, loc)
	if s.recorder != nil {
		s.recorder.Evaluated(Sunrise)
		s.recorder.Evaluated(Sunset)
	}

	rise := isAfterEvent(opts.ReferenceTime, times, Sunrise)
	set := isAfterEvent(opts.ReferenceTime, times, Sunset)

	return Status{
		ReferenceTime: opts.ReferenceTime,
		Location:      loc,
		Source:        source,
		AfterSunrise:  rise,
		AfterSunset:   set,
		Daylight:      rise && !set,
		Night:         set,
	}
}

// Night is the same as AfterSunset. An instant before sunrise is neither
// daylight nor night.
func (s *Sunlight) Night(ctx context.Context, opts Options) Result {
	return s.AfterSunset(ctx, opts)
}

func (s *Sunlight) IsAfterSunrise(ctx context.Context, opts Options) bool {
	return s.AfterSunrise(ctx, opts).Value
}

func (s *Sunlight) IsAfterSunset(ctx context.Context, opts Options) bool {
	return s.AfterSunset(ctx, opts).Value
}

func (s *Sunlight) IsDaylight(ctx context.Context, opts Options) bool {
	return s.Daylight(ctx, opts).Value
}

func (s *Sunlight) IsNightTime(ctx context.Context, opts Options) bool {
	return s.Night(ctx, opts).Value
}

func (s *Sunlight) pin(opts Options) Options {
	if opts.ReferenceTime.IsZero() {
		opts.ReferenceTime = s.clock.Now()
	}
	return opts
}

func (s *Sunlight) resolveLocation(ctx context.Context, opts Options) (Location, Source) {
	loc := Location{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
	source := SourceFallback

	explicit := opts.Latitude != nil && opts.Longitude != nil
	if opts.UseGeolocation && !explicit {
		if pos, ok := s.geolocate(ctx); ok {
			loc = pos
			source = SourceGeolocation
		}
	}

	if opts.Latitude != nil {
		loc.Latitude = *opts.Latitude
	}
	if opts.Longitude != nil {
		loc.Longitude = *opts.Longitude
	}
	if explicit {
		source = SourceExplicit
	}

	if source == SourceFallback && s.recorder != nil {
		s.recorder.LocationFallback()
	}

	return loc, source
}

func (s *Sunlight) geolocate(ctx context.Context) (Location, bool) {
	if s.geolocator == nil {
		s.log.Warn().Msg("geolocation is not available, using provided or default coordinates")
		return Location{}, false
	}

	pos, err := s.geolocator.CurrentPosition(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("geolocation failed, using provided or default coordinates")
		return Location{}, false
	}

	return pos, true
}
