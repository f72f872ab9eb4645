// Package authoring implementa la interacción de registro de un evento en dos pasos:
// elegir categoría y completar detalles. No depende de ninguna capa de UI.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/events/details"
)

type State string

const (
	StateCategorySelection State = "category_selection"
	StateDetailEntry       State = "detail_entry"
)

// Field identifica un campo editable de la etapa de detalles.
type Field string

const (
	FieldOption       Field = "option"
	FieldComment      Field = "comment"
	FieldEndTime      Field = "end_time"
	FieldMedicineName Field = "medicine_name"
	FieldMedicineDose Field = "medicine_dose"
	FieldDescription  Field = "description"
	// FieldTime no se edita con SetField (ver SetTime); aparece en errores.
	FieldTime Field = "time"
)

var (
	ErrWrongState      = errors.New("authoring: action not allowed in current state")
	ErrUnknownCategory = errors.New("authoring: unknown category")
	ErrFieldNotAllowed = errors.New("authoring: field not allowed for category")
	ErrSubmitting      = errors.New("authoring: submission in progress")
)

// ValidationError es local: nunca llega al motor de creación.
type ValidationError struct {
	Category events.Category
	Field    Field
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Submitter recibe el payload listo (normalmente: CreateEvents con los niños elegidos).
type Submitter interface {
	SubmitEvent(ctx context.Context, p events.Payload) error
}

type SubmitterFunc func(ctx context.Context, p events.Payload) error

func (f SubmitterFunc) SubmitEvent(ctx context.Context, p events.Payload) error { return f(ctx, p) }

// Session es una sesión de registro. Métodos seguros para uso concurrente.
type Session struct {
	clock func() time.Time

	mu         sync.Mutex
	state      State
	category   events.Category
	eventTime  time.Time
	fields     map[Field]string
	submitting bool
}

func New(clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	s := &Session{clock: clock}
	s.resetLocked()
	return s
}

func (s *Session) resetLocked() {
	s.state = StateCategorySelection
	s.category = ""
	s.eventTime = s.clock()
	s.fields = map[Field]string{}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Category devuelve "" en CategorySelection.
func (s *Session) Category() events.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Time es la hora editable: para sleep es el inicio de la siesta.
func (s *Session) Time() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventTime
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Field devuelve el valor actual de un campo.
func (s *Session) Field(f Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[f]
}

// PickCategory pasa a DetailEntry. Solo se conserva la hora; el resto se descarta.
func (s *Session) PickCategory(c events.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	if s.state != StateCategorySelection {
		return ErrWrongState
	}
	if _, ok := events.Lookup(c); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	s.state = StateDetailEntry
	s.category = c
	s.fields = map[Field]string{}
	return nil
}

// Back vuelve a CategorySelection descartando los detalles.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	if s.state != StateDetailEntry {
		return ErrWrongState
	}
	s.state = StateCategorySelection
	s.category = ""
	s.fields = map[Field]string{}
	return nil
}

func (s *Session) SetTime(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	if t.IsZero() {
		return &ValidationError{Category: s.category, Field: FieldTime, Message: "time is required"}
	}
	s.eventTime = t
	return nil
}

// SetField solo acepta los campos que el formulario de la categoría muestra.
// FieldEndTime se espera como HH:MM (mismo día que el inicio) o RFC3339.
func (s *Session) SetField(f Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitting
	}
	if s.state != StateDetailEntry {
		return ErrWrongState
	}
	cfg, _ := events.Lookup(s.category)
	if !allowed(cfg, f) {
		return fmt.Errorf("%w: %s on %s", ErrFieldNotAllowed, f, s.category)
	}
	s.fields[f] = value
	return nil
}

// allowed sale del registro: tipo de formulario + forma.
func allowed(cfg events.CategoryConfig, f Field) bool {
	switch cfg.FormType {
	case events.FormSimple:
		return f == FieldOption || f == FieldComment
	case events.FormNote:
		return f == FieldDescription
	case events.FormCustom:
		switch cfg.Shape {
		case details.ShapeSleep:
			return f == FieldEndTime
		case details.ShapeMedicine:
			return f == FieldMedicineName || f == FieldMedicineDose
		}
	}
	return false
}

// CanSubmit indica si el botón de enviar debería estar habilitado.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting || s.state != StateDetailEntry {
		return false
	}
	_, err := s.payloadLocked(s.clock())
	return err == nil
}

func (s *Session) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDetailEntry {
		return ErrWrongState
	}
	_, err := s.payloadLocked(s.clock())
	return err
}

// Payload arma el payload sin enviarlo.
func (s *Session) Payload() (events.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDetailEntry {
		return events.Payload{}, ErrWrongState
	}
	return s.payloadLocked(s.clock())
}

// Submit envía el payload. Una vez empezado no se cancela: el submitter
// recibe un contexto sin cancelación. Si falla, la sesión queda abierta con
// los datos intactos; si sale bien, vuelve a CategorySelection con hora nueva.
func (s *Session) Submit(ctx context.Context, sub Submitter) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitting
	}
	if s.state != StateDetailEntry {
		s.mu.Unlock()
		return ErrWrongState
	}
	p, err := s.payloadLocked(s.clock())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.submitting = true
	s.mu.Unlock()

	err = sub.SubmitEvent(context.WithoutCancel(ctx), p)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		return err
	}
	s.resetLocked()
	return nil
}

// Close abandona la sesión sin efectos. Durante un envío no hace nada.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return
	}
	s.resetLocked()
}

func (s *Session) payloadLocked(now time.Time) (events.Payload, error) {
	cfg, ok := events.Lookup(s.category)
	if !ok {
		return events.Payload{}, fmt.Errorf("%w: %q", ErrUnknownCategory, s.category)
	}

	d, err := s.buildDetailsLocked(cfg)
	if err != nil {
		return events.Payload{}, err
	}
	if err := d.Validate(); err != nil {
		return events.Payload{}, s.asValidationError(cfg, err)
	}

	eventTime := s.eventTime
	if cfg.Shape == details.ShapeSleep {
		// La hora editada es el inicio; el evento se fecha al momento de registrar.
		eventTime = now
	}

	return events.Payload{Category: s.category, Details: d, EventTime: eventTime}, nil
}

func (s *Session) buildDetailsLocked(cfg events.CategoryConfig) (details.Details, error) {
	get := func(f Field) string { return strings.TrimSpace(s.fields[f]) }

	switch cfg.Shape {
	case details.ShapeFood:
		if err := s.checkOption(cfg, get(FieldOption)); err != nil {
			return nil, err
		}
		return details.Food{MealType: details.MealType(get(FieldOption)), Description: get(FieldComment)}, nil

	case details.ShapeDiaper:
		if err := s.checkOption(cfg, get(FieldOption)); err != nil {
			return nil, err
		}
		return details.Diaper{Type: details.DiaperType(get(FieldOption)), Observation: get(FieldComment)}, nil

	case details.ShapeSleep:
		d := details.Sleep{StartTime: s.eventTime}
		if raw := get(FieldEndTime); raw != "" {
			end, err := parseEndTime(raw, s.eventTime)
			if err != nil {
				return nil, &ValidationError{
					Category: cfg.Category,
					Field:    FieldEndTime,
					Message:  fmt.Sprintf("%s: end time must be HH:MM or RFC3339", cfg.Label),
				}
			}
			d.EndTime = &end
		}
		return d, nil

	case details.ShapeMedicine:
		return details.Medicine{Name: get(FieldMedicineName), Dose: get(FieldMedicineDose)}, nil

	case details.ShapeNote:
		return details.Note{Description: get(FieldDescription)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cfg.Category)
}

func (s *Session) checkOption(cfg events.CategoryConfig, id string) error {
	if id == "" {
		return &ValidationError{Category: cfg.Category, Field: FieldOption, Message: fmt.Sprintf("%s: %s is required", cfg.Label, optionName(cfg))}
	}
	if !cfg.HasOption(id) {
		return &ValidationError{Category: cfg.Category, Field: FieldOption, Message: fmt.Sprintf("%s: unknown option %q", cfg.Label, id)}
	}
	return nil
}

// optionName usa el nombre del campo en el documento (mealType, type).
func optionName(cfg events.CategoryConfig) string {
	switch cfg.Shape {
	case details.ShapeFood:
		return "mealType"
	case details.ShapeDiaper:
		return "type"
	}
	return string(FieldOption)
}

var fieldByDocument = map[string]Field{
	"mealType":    FieldOption,
	"type":        FieldOption,
	"description": FieldDescription,
	"observation": FieldComment,
	"startTime":   FieldTime,
	"endTime":     FieldEndTime,
	"name":        FieldMedicineName,
	"dose":        FieldMedicineDose,
}

func (s *Session) asValidationError(cfg events.CategoryConfig, err error) error {
	var fe *details.FieldError
	if !errors.As(err, &fe) {
		return &ValidationError{Category: cfg.Category, Message: fmt.Sprintf("%s: %v", cfg.Label, err)}
	}
	f, ok := fieldByDocument[fe.Field]
	if !ok {
		f = Field(fe.Field)
	}
	return &ValidationError{Category: cfg.Category, Field: f, Message: fmt.Sprintf("%s: %s", cfg.Label, fe.Message)}
}

// parseEndTime acepta RFC3339 o HH:MM en el día (y zona) del inicio.
func parseEndTime(raw string, start time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	hm, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(start.Year(), start.Month(), start.Day(), hm.Hour(), hm.Minute(), 0, 0, start.Location()), nil
}

// Engine lo implementa events.Service.
type Engine interface {
	CreateEvents(ctx context.Context, in events.CreateEventsInput) ([]events.Event, error)
}

// ForChildren adapta el motor de creación para una selección de niños.
func ForChildren(engine Engine, childIDs []string, staffID string) Submitter {
	ids := append([]string(nil), childIDs...)
	return SubmitterFunc(func(ctx context.Context, p events.Payload) error {
		_, err := engine.CreateEvents(ctx, events.CreateEventsInput{Payload: p, ChildIDs: ids, StaffID: staffID})
		return err
	})
}
