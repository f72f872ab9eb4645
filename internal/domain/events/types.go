package events

type Category string

const (
	CategoryFood        Category = "food"
	CategorySleep       Category = "sleep"
	CategoryDiaper      Category = "diaper"
	CategoryMedicine    Category = "medicine"
	CategoryActivity    Category = "activity"
	CategoryIncident    Category = "incident"
	CategoryGeneralNote Category = "general_note"
)

// Valid indica si la categoría está en el registro.
func (c Category) Valid() bool {
	_, ok := Lookup(c)
	return ok
}

// FormType define cómo se capturan los detalles de una categoría.
// @Enum simple, custom, note
type FormType string

const (
	// FormSimple: opciones excluyentes + comentario libre.
	FormSimple FormType = "simple"
	// FormCustom: campos estructurados propios de la categoría.
	FormCustom FormType = "custom"
	// FormNote: solo descripción libre.
	FormNote FormType = "note"
)
