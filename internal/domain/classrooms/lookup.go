package classrooms

import "context"

// TeachersOf expone los docentes de una sala.
// Se usa para evitar ciclos de imports entre módulos (children <-> classrooms).
func (s *Service) TeachersOf(ctx context.Context, classroomID string) ([]string, error) {
	c, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	return c.TeacherIDs, nil
}
