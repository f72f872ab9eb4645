package access

import "daycare-log/internal/domain/users"

// Screen es una pantalla protegida con su rol requerido.
type Screen struct {
	Name string
	Path string
	Role users.Role
}

var screens = []Screen{
	{Name: "admin", Path: PathAdminHome, Role: users.RoleAdmin},
	{Name: "admin-classrooms", Path: "/admin/classrooms", Role: users.RoleAdmin},
	{Name: "admin-teachers", Path: "/admin/teachers", Role: users.RoleAdmin},
	{Name: "admin-children", Path: "/admin/children", Role: users.RoleAdmin},
	{Name: "admin-users", Path: "/admin/users", Role: users.RoleAdmin},
	{Name: "teacher-events", Path: PathTeacherEvents, Role: users.RoleTeacher},
	{Name: "teacher-log", Path: "/teacher/log", Role: users.RoleTeacher},
	{Name: "teacher-profile", Path: "/teacher/profile", Role: users.RoleTeacher},
	{Name: "guardian-timeline", Path: PathGuardianTimeline, Role: users.RoleParent},
	{Name: "guardian-profile", Path: "/guardian/profile", Role: users.RoleParent},
}

func ScreenByName(name string) (Screen, bool) {
	for _, s := range screens {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}

func Screens() []Screen {
	out := make([]Screen, len(screens))
	copy(out, screens)
	return out
}
