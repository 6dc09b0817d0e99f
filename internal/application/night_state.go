// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package application

type NightState struct {
	tracker *SunlightTracker
}

func NewNightState() *NightState {
	return &NightState{}
}

func (n *NightState) SetTracker(tracker *SunlightTracker) {
	n.tracker = tracker
}

func (n *NightState) Daylight() bool {
	return false
}

func (n *NightState) check(daylight bool) bool {
	if !daylight {
		return false
	}

	n.tracker.switchState(n.tracker.turnedDay)

	return true
}
