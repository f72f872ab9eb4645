package details

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected *FieldError, got %v", err)
	return fe.Field
}

func TestFood_Validate(t *testing.T) {
	assert.NoError(t, Food{MealType: MealLunch}.Validate())

	err := Food{}.Validate()
	assert.Equal(t, "mealType", fieldOf(t, err))
	assert.EqualError(t, err, "mealType is required")

	err = Food{MealType: "dinner"}.Validate()
	assert.Equal(t, "mealType", fieldOf(t, err))
	assert.Contains(t, err.Error(), "breakfast lunch snack")
}

func TestSleep_Validate(t *testing.T) {
	start := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	before := start.Add(-time.Minute)

	assert.NoError(t, Sleep{StartTime: start}.Validate())
	assert.NoError(t, Sleep{StartTime: start, EndTime: &end}.Validate())
	assert.NoError(t, Sleep{StartTime: start, EndTime: &start}.Validate())

	assert.Equal(t, "startTime", fieldOf(t, Sleep{}.Validate()))
	assert.Equal(t, "endTime", fieldOf(t, Sleep{StartTime: start, EndTime: &before}.Validate()))
}

func TestDiaper_Validate(t *testing.T) {
	for _, dt := range DiaperTypes() {
		assert.NoError(t, Diaper{Type: dt}.Validate())
	}
	assert.Equal(t, "type", fieldOf(t, Diaper{}.Validate()))
	assert.Equal(t, "type", fieldOf(t, Diaper{Type: "wet"}.Validate()))
}

func TestMedicine_Validate(t *testing.T) {
	assert.NoError(t, Medicine{Name: "Ibuprofen", Dose: "5ml"}.Validate())
	assert.Equal(t, "name", fieldOf(t, Medicine{Name: "  ", Dose: "5ml"}.Validate()))
	assert.Equal(t, "dose", fieldOf(t, Medicine{Name: "Ibuprofen"}.Validate()))
}

func TestShapesAreDistinct(t *testing.T) {
	all := []Details{Food{}, Sleep{}, Diaper{}, Medicine{}, Note{}}
	seen := map[Shape]bool{}
	for _, d := range all {
		assert.False(t, seen[d.Shape()], "duplicated shape %s", d.Shape())
		seen[d.Shape()] = true
	}
	assert.NoError(t, Note{}.Validate())
}
