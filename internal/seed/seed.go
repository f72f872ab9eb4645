// Package seed carga datos de demo (admin, docente, tutor, una sala y dos niños).
// Sirve para probar el flujo completo en modo dev sin un proveedor de identidad.
package seed

import (
	"context"
	"errors"
	"fmt"

	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/classrooms"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/router"

	"go.uber.org/zap"
)

const (
	AdminID   = "demo-admin"
	TeacherID = "demo-teacher"
	ParentID  = "demo-parent"
)

// Demo no hace nada si el admin de demo ya existe.
func Demo(ctx context.Context, svcs router.Services, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := svcs.Users.GetByID(ctx, AdminID); err == nil {
		log.Info("seed: demo data already present")
		return nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return err
	}

	people := []users.CreateInput{
		{ID: AdminID, Email: "admin@daycare.local", FirstName: "Dora", LastName: "Admin", Roles: []users.Role{users.RoleAdmin}},
		{ID: TeacherID, Email: "teacher@daycare.local", FirstName: "Tina", LastName: "Teacher", Roles: []users.Role{users.RoleTeacher},
			Teacher: &users.TeacherProfile{Shift: "morning", EmployeeID: "T-001"}},
		{ID: ParentID, Email: "parent@daycare.local", FirstName: "Pablo", LastName: "Parent", Roles: []users.Role{users.RoleParent}},
	}
	for _, in := range people {
		if _, err := svcs.Users.Create(ctx, in); err != nil {
			return fmt.Errorf("seed user %s: %w", in.ID, err)
		}
	}

	room, err := svcs.Classrooms.Create(ctx, classrooms.CreateInput{
		Name:       "Sala Amarilla",
		TeacherIDs: []string{TeacherID},
	})
	if err != nil {
		return fmt.Errorf("seed classroom: %w", err)
	}

	for _, in := range []children.CreateInput{
		{FirstName: "Alma", LastName: "Parent", ClassroomID: room.ID, GuardianIDs: []string{ParentID}},
		{FirstName: "Bruno", LastName: "Sosa", ClassroomID: room.ID},
	} {
		if _, err := svcs.Children.Create(ctx, in); err != nil {
			return fmt.Errorf("seed child %s: %w", in.FirstName, err)
		}
	}

	log.Info("seed: demo data created",
		zap.String("admin", AdminID),
		zap.String("teacher", TeacherID),
		zap.String("parent", ParentID),
		zap.String("classroom", room.ID),
	)
	return nil
}
