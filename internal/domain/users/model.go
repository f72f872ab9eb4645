package users

import "time"

// Role define los roles de la aplicación. Un usuario puede tener varios.
// @Enum admin, teacher, parent
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleParent:
		return true
	}
	return false
}

// TeacherProfile solo aplica a usuarios con RoleTeacher.
type TeacherProfile struct {
	Phone        string
	Shift        string
	EmployeeID   string
	ClassroomIDs []string
}

// User es el perfil de aplicación (no la identidad del proveedor).
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string

	Roles []Role

	// ChildIDs: hijos a cargo cuando el usuario es tutor.
	ChildIDs []string

	Teacher *TeacherProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// TeachesIn indica si el perfil docente incluye la sala.
func (u User) TeachesIn(classroomID string) bool {
	if u.Teacher == nil {
		return false
	}
	for _, id := range u.Teacher.ClassroomIDs {
		if id == classroomID {
			return true
		}
	}
	return false
}
