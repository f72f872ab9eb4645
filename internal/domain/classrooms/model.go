package classrooms

import "time"

// Classroom es una sala con sus docentes asignados.
type Classroom struct {
	ID         string
	Name       string
	TeacherIDs []string
	Year       int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Classroom) HasTeacher(userID string) bool {
	for _, id := range c.TeacherIDs {
		if id == userID {
			return true
		}
	}
	return false
}
