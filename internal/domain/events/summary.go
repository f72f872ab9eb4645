package events

import (
	"fmt"
	"strings"
	"time"

	"daycare-log/internal/domain/events/details"
)

// LastEventSummary es la proyección del último evento guardada en el niño.
type LastEventSummary struct {
	Category    Category  `json:"category"`
	EventTime   time.Time `json:"event_time"`
	Description string    `json:"description"`
}

// SummaryOf deriva el resumen únicamente del evento dado.
func SummaryOf(e Event) LastEventSummary {
	return LastEventSummary{
		Category:    e.Category,
		EventTime:   e.EventTime,
		Description: Describe(e.Category, e.Details),
	}
}

const clockLayout = "15:04"

// Describe arma el texto legible del evento. Es una función pura de (category, details).
func Describe(c Category, d details.Details) string {
	cfg, _ := Lookup(c)
	fallback := fmt.Sprintf("%s logged.", labelOr(cfg, c))

	switch v := d.(type) {
	case details.Food:
		if desc := strings.TrimSpace(v.Description); desc != "" {
			return fmt.Sprintf("Ate %s: %s.", v.MealType, trimDot(desc))
		}
		return fmt.Sprintf("Ate %s.", v.MealType)

	case details.Sleep:
		start := v.StartTime.Format(clockLayout)
		if v.EndTime != nil {
			return fmt.Sprintf("Slept from %s to %s.", start, v.EndTime.Format(clockLayout))
		}
		return fmt.Sprintf("Started a nap at %s.", start)

	case details.Diaper:
		s := fmt.Sprintf("Diaper change (%s).", v.Type)
		if obs := strings.TrimSpace(v.Observation); obs != "" {
			s += " " + obs
		}
		return s

	case details.Medicine:
		return fmt.Sprintf("Took %s (%s).", strings.TrimSpace(v.Name), strings.TrimSpace(v.Dose))

	case details.Note:
		desc := strings.TrimSpace(v.Description)
		if desc == "" {
			return fallback
		}
		if cfg.NotePrefix == "" {
			return desc
		}
		return fmt.Sprintf("%s: %s.", cfg.NotePrefix, trimDot(desc))
	}

	return fallback
}

func labelOr(cfg CategoryConfig, c Category) string {
	if cfg.Label != "" {
		return cfg.Label
	}
	return string(c)
}

func trimDot(s string) string {
	return strings.TrimRight(s, ".")
}
