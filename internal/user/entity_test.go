// AngelaMos | 2026
// entity_test.go

package user

import "testing"

func TestPermissionsForRole(t *testing.T) {
	tests := []struct {
		role string
		want Permissions
	}{
		{
			role: RoleAdmin,
			want: Permissions{
				ViewSubmissions: true,
				ExportData:      true,
				ManageUsers:     true,
				ViewAnalytics:   true,
			},
		},
		{
			role: RoleManager,
			want: Permissions{
				ViewSubmissions: true,
				ExportData:      true,
				ManageUsers:     false,
				ViewAnalytics:   true,
			},
		},
		{
			role: RoleAnalyst,
			want: Permissions{
				ViewSubmissions: true,
				ExportData:      false,
				ManageUsers:     false,
				ViewAnalytics:   true,
			},
		},
		{
			// unrecognized roles get the most restrictive set
			role: "intern",
			want: Permissions{
				ViewSubmissions: true,
				ExportData:      false,
				ManageUsers:     false,
				ViewAnalytics:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := PermissionsForRole(tt.role); got != tt.want {
				t.Errorf("PermissionsForRole(%q) = %+v, want %+v",
					tt.role, got, tt.want)
			}
		})
	}
}

func TestPermissionsMap(t *testing.T) {
	m := PermissionsForRole(RoleManager).Map()

	if !m[PermViewSubmissions] || !m[PermExportData] || !m[PermViewAnalytics] {
		t.Errorf("manager map missing grants: %v", m)
	}
	if m[PermManageUsers] {
		t.Error("manager should not manage users")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleAnalyst} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	for _, role := range []string{"", "root", "Admin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true", role)
		}
	}
}
