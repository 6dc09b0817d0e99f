// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

type DaylightState struct {
	tracker *SunlightTracker
}

func NewDaylightState() *DaylightState {
	return &DaylightState{}
}

func (d *DaylightState) SetTracker(tracker *SunlightTracker) {
	d.tracker = tracker
}

func (d *DaylightState) Daylight() bool {
	return true
}

func (d *DaylightState) check(daylight bool) bool {
	if daylight {
		return false
	}

	d.tracker.switchState(d.tracker.turnedNight)

	return true
}
