package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"smarttravel/internal/models/request_models"
)

func TestComputeBudgetBreakdown(t *testing.T) {
	b := ComputeBudgetBreakdown(900, 3, 3)

	assert.InDelta(t, 300, b.PerDay, 1e-9)
	assert.InDelta(t, 300, b.PerPerson, 1e-9)
	assert.InDelta(t, 100, b.PerPersonPerDay, 1e-9)
}

func TestComputeBudgetBreakdown_ClampsZeroes(t *testing.T) {
	b := ComputeBudgetBreakdown(500, 0, 0)

	assert.Equal(t, 1, b.Days)
	assert.Equal(t, 1, b.Guests)
	assert.InDelta(t, 500, b.PerPersonPerDay, 1e-9)
}

func TestRoomsNeeded(t *testing.T) {
	assert.Equal(t, 1, RoomsNeeded(0))
	assert.Equal(t, 1, RoomsNeeded(1))
	assert.Equal(t, 1, RoomsNeeded(2))
	assert.Equal(t, 2, RoomsNeeded(3))
	assert.Equal(t, 10, RoomsNeeded(20))
}

func samplePromptInput() PromptInput {
	return PromptInput{
		Destination: "Da Nang",
		Days:        3,
		Guests:      3,
		Budget:      900,
		Candidates: request_models.CandidatePlaces{
			Activities:  []request_models.NormalizedPlace{{ID: "a1", Name: "Marble Mountains", Rating: 4.6}},
			Restaurants: []request_models.NormalizedPlace{{ID: "r1", Name: "Bar & Grill", Rating: 4.1, AvgPrice: 12}},
			Hotels:      []request_models.NormalizedPlace{{ID: "h1", Name: "Riverside Hotel", AvgPrice: 60}},
			Transport:   []string{"taxi", "walk"},
		},
		Preferences: request_models.Preferences{
			LikedActivities:   []request_models.NormalizedPlace{{ID: "a1", Name: "Marble Mountains"}},
			LikedTransport:    []string{"walk"},
			DislikedTransport: []string{"bus"},
		},
	}
}

func TestBuildItineraryPrompt_Contents(t *testing.T) {
	prompt := BuildItineraryPrompt(samplePromptInput())

	assert.Contains(t, prompt, "3-day itinerary for Da Nang")
	assert.Contains(t, prompt, "Daily Budget: $300.00 USD per day")
	assert.Contains(t, prompt, "Per Person Budget: $300.00")
	assert.Contains(t, prompt, "Daily Per Person: $100.00")
	assert.Contains(t, prompt, "Hotel rooms needed: 2")
	assert.Contains(t, prompt, "Breakfast 07:00-08:30, Lunch 12:00-13:00, Dinner 18:30-19:30")
	assert.Contains(t, prompt, `"Bar & Grill"`)
	assert.Contains(t, prompt, `- Transport Modes: ["walk"]`)
	assert.Contains(t, prompt, `- Transport Modes: ["bus"]`)
	assert.Contains(t, prompt, `Default mode is "taxi"`)
	assert.Contains(t, prompt, "Minimum rating 3.5 (relax to 3.0")
	assert.Contains(t, prompt, `"destination": "Da Nang"`)
	assert.Contains(t, prompt, `"type": "transfer"`)
}

func TestBuildItineraryPrompt_Deterministic(t *testing.T) {
	in := samplePromptInput()

	assert.Equal(t, BuildItineraryPrompt(in), BuildItineraryPrompt(in))
}

func TestBuildItineraryPrompt_KeepsCandidateOrder(t *testing.T) {
	in := samplePromptInput()
	in.Candidates.Activities = []request_models.NormalizedPlace{
		{ID: "z", Name: "Zoo"},
		{ID: "a", Name: "Aquarium"},
	}

	prompt := BuildItineraryPrompt(in)

	assert.Less(t, strings.Index(prompt, `"Zoo"`), strings.Index(prompt, `"Aquarium"`))
}

func TestBuildItineraryPrompt_NonFinitePriceKeepsCategory(t *testing.T) {
	in := samplePromptInput()
	in.Candidates.Activities = []request_models.NormalizedPlace{
		{ID: "m1", Name: "Museum A", AvgPrice: 10},
		{ID: "m2", Name: "Museum B", AvgPrice: math.NaN(), Rating: math.Inf(1)},
	}

	prompt := BuildItineraryPrompt(in)

	assert.Contains(t, prompt, "Activities (2 available)")
	assert.Contains(t, prompt, `"Museum A"`)
	assert.Contains(t, prompt, `"Museum B"`)
	assert.NotContains(t, prompt, "Activities (2 available):\n[]")
	assert.True(t, math.IsNaN(in.Candidates.Activities[1].AvgPrice))
}
