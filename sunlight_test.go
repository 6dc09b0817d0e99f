package sunlightwatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equinox(hour, minute int) time.Time {
	return time.Date(2024, time.March, 20, hour, minute, 0, 0, time.UTC)
}

func TestPredicates_Equator(t *testing.T) {
	ctx := context.Background()

	noon := Options{ReferenceTime: equinox(12, 0)}
	assert.True(t, IsAfterSunrise(ctx, noon))
	assert.False(t, IsAfterSunset(ctx, noon))
	assert.True(t, IsDaylight(ctx, noon))
	assert.False(t, IsNightTime(ctx, noon))

	late := Options{ReferenceTime: equinox(22, 0)}
	assert.False(t, IsDaylight(ctx, late))
	assert.True(t, IsNightTime(ctx, late))

	early := Options{ReferenceTime: equinox(3, 0)}
	assert.False(t, IsDaylight(ctx, early))
	assert.False(t, IsNightTime(ctx, early))
}

func TestDaylight_DefaultsToOrigin(t *testing.T) {
	res := Daylight(context.Background(), Options{ReferenceTime: equinox(12, 0)})

	assert.True(t, res.Value)
	assert.Equal(t, Location{}, res.Location)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestCurrentStatus_PolarDay(t *testing.T) {
	st := CurrentStatus(context.Background(), At(78.22, 15.65).WithTime(time.Date(2024, time.June, 21, 2, 0, 0, 0, time.UTC)))

	assert.Equal(t, SourceExplicit, st.Source)
	assert.False(t, st.AfterSunrise)
	assert.False(t, st.AfterSunset)
	assert.False(t, st.Daylight)
	assert.False(t, st.Night)
}

func TestDaylight_ExplicitCoordinates(t *testing.T) {
	// 12:00 UTC is 21:00 local solar time at 135E.
	res := Daylight(context.Background(), At(35.0, 135.0).WithTime(equinox(12, 0)))

	assert.False(t, res.Value)
	assert.Equal(t, Location{Latitude: 35, Longitude: 135}, res.Location)
	assert.Equal(t, SourceExplicit, res.Source)
}

func TestOnSunlightChange_Handle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := OnSunlightChange(ctx, time.Hour, Options{})
	require.NotNil(t, tr)
	assert.Same(t, tr, tr.OnToggle(func(bool) {}))
	assert.Equal(t, time.Hour, tr.Interval())
}
