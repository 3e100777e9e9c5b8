package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttravel/internal/models/request_models"
	"smarttravel/internal/models/response_models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func transfer(start, mode string) response_models.ActivityEntry {
	e := response_models.ActivityEntry{StartTime: start, EndTime: start, Type: response_models.ActivityTypeTransfer}
	if mode != "" {
		e.TransportMode = strPtr(mode)
	}
	return e
}

func visit(id string) response_models.ActivityEntry {
	return response_models.ActivityEntry{Type: response_models.ActivityTypeActivity, PlaceID: strPtr(id), Cost: 15}
}

func sampleDays() []response_models.DaySchedule {
	return []response_models.DaySchedule{
		{Day: 1, Activities: []response_models.ActivityEntry{
			visit("a1"), transfer("10:30", "Bus"), visit("a2"), transfer("12:00", ""), visit("r1"),
		}},
		{Day: 2, Activities: []response_models.ActivityEntry{
			transfer("08:00", "taxi"), visit("h1"), transfer("20:00", "walk"),
		}},
	}
}

func newTestEnforcer() *TransportEnforcer {
	return NewTransportEnforcer(rand.New(rand.NewSource(7)))
}

func transferModes(days []response_models.DaySchedule) []string {
	var modes []string
	for _, d := range days {
		for _, a := range d.Activities {
			if a.IsTransfer() {
				modes = append(modes, a.Mode())
			}
		}
	}
	return modes
}

func TestEnforce_LikedModesOnly(t *testing.T) {
	prefs := request_models.Preferences{LikedTransport: []string{"Metro", "walk"}, DislikedTransport: []string{"bus"}}

	out := newTestEnforcer().Enforce(sampleDays(), prefs, request_models.CandidatePlaces{})

	modes := transferModes(out)
	require.Len(t, modes, 4)
	for _, m := range modes {
		assert.Contains(t, []string{"metro", "walk"}, m)
	}
	// already liked, kept
	assert.Equal(t, "walk", out[1].Activities[2].Mode())
}

func TestEnforce_DislikedReplacedWithTaxi(t *testing.T) {
	prefs := request_models.Preferences{DislikedTransport: []string{"BUS", "walk"}}

	out := newTestEnforcer().Enforce(sampleDays(), prefs, request_models.CandidatePlaces{})

	assert.Equal(t, []string{"taxi", "taxi", "taxi", "taxi"}, transferModes(out))
}

func TestEnforce_TaxiDislikedUsesAvailableMode(t *testing.T) {
	prefs := request_models.Preferences{DislikedTransport: []string{"taxi", "bus", "walk"}}
	places := request_models.CandidatePlaces{Transport: []string{"Taxi", "Cyclo"}}

	out := newTestEnforcer().Enforce(sampleDays(), prefs, places)

	for _, m := range transferModes(out) {
		assert.NotContains(t, prefs.DislikedTransport, m)
	}
	assert.Equal(t, "cyclo", out[0].Activities[3].Mode())
}

func TestEnforce_NoPreferences(t *testing.T) {
	out := newTestEnforcer().Enforce(sampleDays(), request_models.Preferences{}, request_models.CandidatePlaces{})

	assert.Equal(t, []string{"bus", "taxi", "taxi", "walk"}, transferModes(out))
	assert.Equal(t, sampleDays()[0].Activities[0], out[0].Activities[0])
}

func TestEnforce_Idempotent(t *testing.T) {
	for _, prefs := range []request_models.Preferences{
		{},
		{LikedTransport: []string{"metro", "grab", "walk"}},
		{DislikedTransport: []string{"taxi", "walk"}},
	} {
		e := newTestEnforcer()
		once := e.Enforce(sampleDays(), prefs, request_models.CandidatePlaces{})
		twice := e.Enforce(once, prefs, request_models.CandidatePlaces{})
		assert.Equal(t, once, twice)
	}
}

func TestEnforce_DoesNotMutateInput(t *testing.T) {
	days := sampleDays()

	newTestEnforcer().Enforce(days, request_models.Preferences{LikedTransport: []string{"metro"}}, request_models.CandidatePlaces{})

	assert.Equal(t, sampleDays(), days)
}

func TestEnforce_EnrichesFromCoordinates(t *testing.T) {
	places := request_models.CandidatePlaces{
		Activities: []request_models.NormalizedPlace{
			{ID: "a1", Latitude: floatPtr(0), Longitude: floatPtr(0)},
			{ID: "a2", Latitude: floatPtr(0), Longitude: floatPtr(0.05)},
		},
	}
	days := []response_models.DaySchedule{{Day: 1, Activities: []response_models.ActivityEntry{
		visit("a1"), transfer("14:00", ""), visit("a2"),
	}}}

	out := newTestEnforcer().Enforce(days, request_models.Preferences{}, places)

	leg := out[0].Activities[1]
	require.NotNil(t, leg.DistanceKM)
	assert.InDelta(t, 5.56, *leg.DistanceKM, 0.01)
	require.NotNil(t, leg.TravelTimeMin)
	assert.Equal(t, TravelTime(*leg.DistanceKM, "taxi", false), *leg.TravelTimeMin)
	assert.InDelta(t, TransportCost(*leg.DistanceKM, "taxi"), leg.Cost, 1e-9)
}

func TestEnforce_KeepsModelDistanceWhenModeUnchanged(t *testing.T) {
	leg := transfer("14:00", "bus")
	leg.DistanceKM = floatPtr(12)
	days := []response_models.DaySchedule{{Day: 1, Activities: []response_models.ActivityEntry{leg}}}

	out := newTestEnforcer().Enforce(days, request_models.Preferences{}, request_models.CandidatePlaces{})

	got := out[0].Activities[0]
	assert.Equal(t, 12.0, *got.DistanceKM)
	assert.Equal(t, 44, *got.TravelTimeMin)
	assert.InDelta(t, 3.6, got.Cost, 1e-9)
}

func TestEnforce_FallbackDistanceWithoutCoordinates(t *testing.T) {
	days := []response_models.DaySchedule{{Day: 1, Activities: []response_models.ActivityEntry{transfer("11:00", "")}}}

	out := newTestEnforcer().Enforce(days, request_models.Preferences{}, request_models.CandidatePlaces{})

	got := out[0].Activities[0]
	assert.Equal(t, 5.0, *got.DistanceKM)
	assert.Equal(t, 25, *got.TravelTimeMin)
	assert.InDelta(t, 6.0, got.Cost, 1e-9)
}

func TestIsRushHour(t *testing.T) {
	assert.True(t, isRushHour("07:30"))
	assert.True(t, isRushHour("18:10"))
	assert.False(t, isRushHour("09:00"))
	assert.False(t, isRushHour("noon"))
}
