package core

import "testing"

// Requirement: management capabilities belong to admins and supervisors;
// check-in belongs to every valid role except guests.
func TestRole_Capabilities(t *testing.T) {
	tests := []struct {
		role        Role
		manageUsers bool
		assignTasks bool
		viewReports bool
		checkIn     bool
	}{
		{role: RoleAdmin, manageUsers: true, assignTasks: true, viewReports: true, checkIn: true},
		{role: RoleSupervisor, manageUsers: true, assignTasks: true, viewReports: true, checkIn: true},
		{role: RoleReceptionist, checkIn: true},
		{role: RoleGuest},
		{role: Role("gerente")},
	}

	for _, test := range tests {
		t.Run(string(test.role), func(t *testing.T) {
			if got := CanManageUsers(test.role); got != test.manageUsers {
				t.Errorf("CanManageUsers(%q) = %v, want %v", test.role, got, test.manageUsers)
			}
			if got := CanAssignTasks(test.role); got != test.assignTasks {
				t.Errorf("CanAssignTasks(%q) = %v, want %v", test.role, got, test.assignTasks)
			}
			if got := CanViewReports(test.role); got != test.viewReports {
				t.Errorf("CanViewReports(%q) = %v, want %v", test.role, got, test.viewReports)
			}
			if got := CanCheckIn(test.role); got != test.checkIn {
				t.Errorf("CanCheckIn(%q) = %v, want %v", test.role, got, test.checkIn)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleSupervisor, RoleReceptionist, RoleGuest} {
		if !role.Valid() {
			t.Errorf("Valid(%q) = false, want true", role)
		}
	}
	if Role("gerente").Valid() {
		t.Error(`Valid("gerente") = true, want false`)
	}
}
