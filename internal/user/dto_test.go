// AngelaMos | 2026
// dto_test.go

package user

import "testing"

func TestToUserResponseProjection(t *testing.T) {
	u := &User{
		ID:           "u-1",
		Username:     "amartinez",
		Email:        "amartinez@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         RoleManager,
		IsActive:     true,
	}

	var resp *UserResponse = ToUserResponse(u)

	if resp.ID != u.ID || resp.Username != u.Username || resp.Email != u.Email {
		t.Errorf("identity fields = %q/%q/%q, want %q/%q/%q",
			resp.ID, resp.Username, resp.Email, u.ID, u.Username, u.Email)
	}
	if resp.Role != RoleManager || !resp.IsActive {
		t.Errorf("role/active = %q/%v, want %q/true", resp.Role, resp.IsActive, RoleManager)
	}
	if resp.Permissions != PermissionsForRole(RoleManager) {
		t.Errorf("permissions = %+v, want derived from role", resp.Permissions)
	}
}

func TestToUserResponseList(t *testing.T) {
	users := []User{
		{ID: "u-1", Username: "first", Role: RoleAdmin},
		{ID: "u-2", Username: "second", Role: RoleAnalyst},
	}

	responses := ToUserResponseList(users)

	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	for i, resp := range responses {
		if resp.ID != users[i].ID || resp.Username != users[i].Username {
			t.Errorf("response %d = %q/%q, want %q/%q",
				i, resp.ID, resp.Username, users[i].ID, users[i].Username)
		}
	}
}
