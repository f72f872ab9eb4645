package events

import (
	"encoding/json"
	"testing"
	"time"

	"daycare-log/internal/domain/events/details"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Catalog(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 7)

	order := make([]Category, 0, len(cats))
	for _, c := range cats {
		order = append(order, c.Category)
		assert.NotEmpty(t, c.Label)
		assert.NotEmpty(t, c.Color)
		assert.True(t, c.Category.Valid())
	}
	assert.Equal(t, []Category{
		CategoryFood, CategorySleep, CategoryDiaper, CategoryActivity,
		CategoryIncident, CategoryMedicine, CategoryGeneralNote,
	}, order)

	food, ok := Lookup(CategoryFood)
	require.True(t, ok)
	assert.Equal(t, FormSimple, food.FormType)
	assert.True(t, food.HasOption("lunch"))
	assert.False(t, food.HasOption("dinner"))

	diaper, _ := Lookup(CategoryDiaper)
	assert.Equal(t, []DetailOption{{ID: "pee", Label: "Pee"}, {ID: "poo", Label: "Poo"}, {ID: "both", Label: "Both"}}, diaper.Options)

	assert.False(t, Category("nap").Valid())

	// Categories devuelve una copia.
	cats[0].Label = "changed"
	again, _ := Lookup(CategoryFood)
	assert.Equal(t, "Food", again.Label)
}

func TestRegistry_FormTypeMatchesShape(t *testing.T) {
	for _, c := range Categories() {
		switch c.FormType {
		case FormSimple:
			assert.NotEmpty(t, c.Options, c.Category)
		case FormNote:
			assert.Equal(t, details.ShapeNote, c.Shape, c.Category)
		case FormCustom:
			assert.Contains(t, []details.Shape{details.ShapeSleep, details.ShapeMedicine}, c.Shape, c.Category)
		default:
			t.Fatalf("unexpected form type %q", c.FormType)
		}
	}
}

func TestDecodeDetails(t *testing.T) {
	d, err := DecodeDetails(CategoryFood, json.RawMessage(`{"mealType":"lunch","description":"pasta"}`))
	require.NoError(t, err)
	assert.Equal(t, details.Food{MealType: details.MealLunch, Description: "pasta"}, d)

	d, err = DecodeDetails(CategoryIncident, nil)
	require.NoError(t, err)
	assert.Equal(t, details.Note{}, d)

	_, err = DecodeDetails(CategoryFood, json.RawMessage(`{"mealType":"dinner"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeDetails(CategoryDiaper, json.RawMessage(`{"type":"poo","name":"x"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload, "unknown fields are rejected")

	_, err = DecodeDetails(CategoryMedicine, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeDetails("nap", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeDetails(CategoryFood, json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestSleepRoundTrip(t *testing.T) {
	start := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

	raw, err := json.Marshal(details.Sleep{StartTime: start})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "endTime")

	d, err := DecodeDetails(CategorySleep, raw)
	require.NoError(t, err)
	s := d.(details.Sleep)
	assert.True(t, s.StartTime.Equal(start))
	assert.Nil(t, s.EndTime)

	end := start.Add(45 * time.Minute)
	raw, err = json.Marshal(details.Sleep{StartTime: start, EndTime: &end})
	require.NoError(t, err)

	d, err = DecodeDetails(CategorySleep, raw)
	require.NoError(t, err)
	s = d.(details.Sleep)
	require.NotNil(t, s.EndTime)
	assert.True(t, s.EndTime.Equal(end))
	assert.False(t, s.EndTime.Before(s.StartTime))

	_, err = DecodeDetails(CategorySleep, json.RawMessage(`{"startTime":"2026-03-02T13:00:00Z","endTime":"2026-03-02T12:00:00Z"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDescribe(t *testing.T) {
	start := time.Date(2026, 3, 2, 13, 5, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 14, 40, 0, 0, time.UTC)

	tests := []struct {
		category Category
		details  details.Details
		want     string
	}{
		{CategoryFood, details.Food{MealType: details.MealSnack}, "Ate snack."},
		{CategoryFood, details.Food{MealType: details.MealLunch, Description: "rice."}, "Ate lunch: rice."},
		{CategorySleep, details.Sleep{StartTime: start}, "Started a nap at 13:05."},
		{CategorySleep, details.Sleep{StartTime: start, EndTime: &end}, "Slept from 13:05 to 14:40."},
		{CategoryDiaper, details.Diaper{Type: details.DiaperPoo}, "Diaper change (poo)."},
		{CategoryDiaper, details.Diaper{Type: details.DiaperBoth, Observation: "Rash noted"}, "Diaper change (both). Rash noted"},
		{CategoryMedicine, details.Medicine{Name: "Ibuprofen", Dose: "2ml"}, "Took Ibuprofen (2ml)."},
		{CategoryActivity, details.Note{Description: "Finger painting"}, "Activity: Finger painting."},
		{CategoryIncident, details.Note{Description: "Scraped knee"}, "Incident: Scraped knee."},
		{CategoryIncident, details.Note{}, "Incident logged."},
		{CategoryGeneralNote, details.Note{Description: "Picked up early."}, "Picked up early."},
		{CategoryGeneralNote, details.Note{}, "Note logged."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Describe(tt.category, tt.details))
		// Pura: mismo resultado en cada llamada.
		assert.Equal(t, Describe(tt.category, tt.details), Describe(tt.category, tt.details))
	}
}

func TestSummaryOf(t *testing.T) {
	e := Event{Category: CategoryDiaper, EventTime: t0, Details: details.Diaper{Type: details.DiaperPoo}}
	s := SummaryOf(e)
	assert.Equal(t, LastEventSummary{Category: CategoryDiaper, EventTime: t0, Description: "Diaper change (poo)."}, s)
}
