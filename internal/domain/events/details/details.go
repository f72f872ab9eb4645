// Package details contiene las formas cerradas del campo details de un evento.
// Cada categoría del registro apunta a exactamente una Shape.
package details

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Shape string

const (
	ShapeFood     Shape = "food"
	ShapeSleep    Shape = "sleep"
	ShapeDiaper   Shape = "diaper"
	ShapeMedicine Shape = "medicine"
	ShapeNote     Shape = "note"
)

// Details es la unión cerrada de formas. Solo este paquete puede implementarla.
type Details interface {
	Shape() Shape
	Validate() error
	sealed()
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
)

// MealTypes en orden de presentación.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealSnack}
}

type DiaperType string

const (
	DiaperPee  DiaperType = "pee"
	DiaperPoo  DiaperType = "poo"
	DiaperBoth DiaperType = "both"
)

func DiaperTypes() []DiaperType {
	return []DiaperType{DiaperPee, DiaperPoo, DiaperBoth}
}

type Food struct {
	MealType    MealType `json:"mealType" validate:"required,oneof=breakfast lunch snack"`
	Description string   `json:"description,omitempty"`
}

type Sleep struct {
	StartTime time.Time  `json:"startTime" validate:"required"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

type Diaper struct {
	Type        DiaperType `json:"type" validate:"required,oneof=pee poo both"`
	Observation string     `json:"observation,omitempty"`
}

type Medicine struct {
	Name string `json:"name" validate:"required"`
	Dose string `json:"dose" validate:"required"`
}

// Note cubre activity, incident y general_note.
type Note struct {
	Description string `json:"description,omitempty"`
}

func (Food) Shape() Shape     { return ShapeFood }
func (Sleep) Shape() Shape    { return ShapeSleep }
func (Diaper) Shape() Shape   { return ShapeDiaper }
func (Medicine) Shape() Shape { return ShapeMedicine }
func (Note) Shape() Shape     { return ShapeNote }

func (Food) sealed()     {}
func (Sleep) sealed()    {}
func (Diaper) sealed()   {}
func (Medicine) sealed() {}
func (Note) sealed()     {}

func (d Food) Validate() error { return check(d) }

func (d Sleep) Validate() error {
	if err := check(d); err != nil {
		return err
	}
	if d.EndTime != nil && d.EndTime.Before(d.StartTime) {
		return &FieldError{Field: "endTime", Message: "endTime must not be before startTime"}
	}
	return nil
}

func (d Diaper) Validate() error { return check(d) }

func (d Medicine) Validate() error {
	// "   " no cuenta como nombre ni dosis.
	d.Name = strings.TrimSpace(d.Name)
	d.Dose = strings.TrimSpace(d.Dose)
	return check(d)
}

func (Note) Validate() error { return nil }

// FieldError describe el primer campo inválido de una forma.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar nombres de campo como en el documento JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func check(d Details) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &FieldError{Field: fe.Field(), Message: fmt.Sprintf("%s is required", fe.Field())}
	case "oneof":
		return &FieldError{Field: fe.Field(), Message: fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())}
	default:
		return &FieldError{Field: fe.Field(), Message: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}
