package children

import (
	"context"
	"errors"
	"fmt"

	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
)

// Reglas de lectura:
// - admin: todo
// - teacher: niños de salas de su perfil o de salas que lo listan como docente
// - parent: niños que lo tienen en GuardianIDs
func (s *Service) canRead(ctx context.Context, u users.User, c Child) (bool, error) {
	if u.HasRole(users.RoleAdmin) {
		return true, nil
	}
	if u.HasRole(users.RoleTeacher) {
		ok, err := s.teaches(ctx, u, c.ClassroomID)
		if err != nil || ok {
			return ok, err
		}
	}
	if u.HasRole(users.RoleParent) && c.HasGuardian(u.ID) {
		return true, nil
	}
	return false, nil
}

func (s *Service) teaches(ctx context.Context, u users.User, classroomID string) (bool, error) {
	if u.TeachesIn(classroomID) {
		return true, nil
	}
	if s.classrooms == nil {
		return false, nil
	}
	teacherIDs, err := s.classrooms.TeachersOf(ctx, classroomID)
	if err != nil {
		return false, err
	}
	for _, id := range teacherIDs {
		if id == u.ID {
			return true, nil
		}
	}
	return false, nil
}

// CanReadChild implementa events.ChildAccess para timelines.
func (s *Service) CanReadChild(ctx context.Context, u users.User, childID string) error {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return events.ErrChildNotFound
		}
		return err
	}
	ok, err := s.canRead(ctx, u, c)
	if err != nil {
		return err
	}
	if !ok {
		return events.ErrForbidden
	}
	return nil
}

// CanRead es la versión para handlers que ya tienen el niño.
func (s *Service) CanRead(ctx context.Context, u users.User, c Child) (bool, error) {
	return s.canRead(ctx, u, c)
}

// CanLogEvents: admin siempre; teacher solo si está asignada a la sala de cada niño.
// Un niño inexistente devuelve events.ErrChildNotFound.
func (s *Service) CanLogEvents(ctx context.Context, u users.User, childIDs []string) error {
	childIDs = events.NormalizeIDs(childIDs)
	if len(childIDs) == 0 {
		return fmt.Errorf("%w: at least one child is required", events.ErrInvalidPayload)
	}

	isAdmin := u.HasRole(users.RoleAdmin)
	if !isAdmin && !u.HasRole(users.RoleTeacher) {
		return events.ErrForbidden
	}

	list, err := s.repo.ListByIDs(ctx, childIDs)
	if err != nil {
		return err
	}
	found := make(map[string]Child, len(list))
	for _, c := range list {
		found[c.ID] = c
	}

	for _, id := range childIDs {
		c, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: %s", events.ErrChildNotFound, id)
		}
		if isAdmin {
			continue
		}
		ok, err := s.teaches(ctx, u, c.ClassroomID)
		if err != nil {
			return err
		}
		if !ok {
			return events.ErrForbidden
		}
	}
	return nil
}
