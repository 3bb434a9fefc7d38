package core

// Role is the application-level role stored on a profile.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSupervisor   Role = "supervisor"
	RoleReceptionist Role = "recepcionista"
	RoleGuest        Role = "invitado"
)

// Valid reports whether the role is one of the known set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleReceptionist, RoleGuest:
		return true
	default:
		return false
	}
}

// DisplayName returns the user-facing label for a role.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleSupervisor:
		return "Supervisor"
	case RoleReceptionist:
		return "Recepcionista"
	case RoleGuest:
		return "Invitado"
	default:
		return string(r)
	}
}

// Capability checks. Screens must call these instead of comparing roles
// inline so the rules live in exactly one place.

func CanManageUsers(r Role) bool {
	return r == RoleAdmin || r == RoleSupervisor
}

func CanAssignTasks(r Role) bool {
	return r == RoleAdmin || r == RoleSupervisor
}

func CanViewReports(r Role) bool {
	return r == RoleAdmin || r == RoleSupervisor
}

func CanCheckIn(r Role) bool {
	return r.Valid() && r != RoleGuest
}
