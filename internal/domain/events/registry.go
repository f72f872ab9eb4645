package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"daycare-log/internal/domain/events/details"
)

// DetailOption es una opción cerrada de un formulario simple.
type DetailOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryConfig es la fila del registro para una categoría.
type CategoryConfig struct {
	Category Category       `json:"category"`
	Label    string         `json:"label"`
	Color    string         `json:"color"`
	Icon     string         `json:"icon"`
	FormType FormType       `json:"form_type"`
	Options  []DetailOption `json:"options,omitempty"`
	Shape    details.Shape  `json:"shape"`

	// NotePrefix se antepone a la descripción en el resumen ("Incident: ...").
	// Vacío = la descripción sola.
	NotePrefix string `json:"-"`
}

// Nuevas categorías se agregan solo acá.
var registry = []CategoryConfig{
	{
		Category: CategoryFood,
		Label:    "Food",
		Color:    "#2e8b57",
		Icon:     "apple",
		FormType: FormSimple,
		Options:  mealOptions(),
		Shape:    details.ShapeFood,
	},
	{
		Category: CategorySleep,
		Label:    "Sleep",
		Color:    "#8a2be2",
		Icon:     "moon",
		FormType: FormCustom,
		Shape:    details.ShapeSleep,
	},
	{
		Category: CategoryDiaper,
		Label:    "Diaper",
		Color:    "#0066ff",
		Icon:     "baby",
		FormType: FormSimple,
		Options:  diaperOptions(),
		Shape:    details.ShapeDiaper,
	},
	{
		Category:   CategoryActivity,
		Label:      "Activity",
		Color:      "#ffc300",
		Icon:       "palette",
		FormType:   FormNote,
		Shape:      details.ShapeNote,
		NotePrefix: "Activity",
	},
	{
		Category:   CategoryIncident,
		Label:      "Incident",
		Color:      "#ff4444",
		Icon:       "alert-circle",
		FormType:   FormNote,
		Shape:      details.ShapeNote,
		NotePrefix: "Incident",
	},
	{
		Category: CategoryMedicine,
		Label:    "Medicine",
		Color:    "#ff9966",
		Icon:     "pill",
		FormType: FormCustom,
		Shape:    details.ShapeMedicine,
	},
	{
		Category: CategoryGeneralNote,
		Label:    "Note",
		Color:    "#999999",
		Icon:     "message-square-text",
		FormType: FormNote,
		Shape:    details.ShapeNote,
	},
}

var byCategory = func() map[Category]CategoryConfig {
	m := make(map[Category]CategoryConfig, len(registry))
	for _, c := range registry {
		m[c.Category] = c
	}
	return m
}()

func mealOptions() []DetailOption {
	out := make([]DetailOption, 0, 3)
	for _, m := range details.MealTypes() {
		out = append(out, DetailOption{ID: string(m), Label: titleCase(string(m))})
	}
	return out
}

func diaperOptions() []DetailOption {
	out := make([]DetailOption, 0, 3)
	for _, d := range details.DiaperTypes() {
		out = append(out, DetailOption{ID: string(d), Label: titleCase(string(d))})
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Lookup devuelve la configuración de una categoría.
func Lookup(c Category) (CategoryConfig, bool) {
	cfg, ok := byCategory[c]
	return cfg, ok
}

// Categories devuelve el catálogo en orden de presentación (copia).
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(registry))
	copy(out, registry)
	return out
}

// HasOption indica si id es una opción válida del formulario simple de la categoría.
func (c CategoryConfig) HasOption(id string) bool {
	for _, o := range c.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// DecodeDetails decodifica y valida el documento details según la forma de la categoría.
// Se usa tanto al escribir como al leer desde storage.
func DecodeDetails(c Category, raw json.RawMessage) (details.Details, error) {
	cfg, ok := Lookup(c)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidPayload, c)
	}

	var (
		d   details.Details
		err error
	)
	switch cfg.Shape {
	case details.ShapeFood:
		d, err = decodeAs[details.Food](raw)
	case details.ShapeSleep:
		d, err = decodeAs[details.Sleep](raw)
	case details.ShapeDiaper:
		d, err = decodeAs[details.Diaper](raw)
	case details.ShapeMedicine:
		d, err = decodeAs[details.Medicine](raw)
	case details.ShapeNote:
		d, err = decodeAs[details.Note](raw)
	default:
		return nil, fmt.Errorf("%w: category %q has no shape", ErrInvalidPayload, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s details: %v", ErrInvalidPayload, c, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s details: %w", ErrInvalidPayload, c, err)
	}
	return d, nil
}

func decodeAs[T details.Details](raw json.RawMessage) (details.Details, error) {
	var v T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
