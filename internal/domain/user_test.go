package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"admin", RoleAdmin, true},
		{" Member ", RoleMember, true},
		{"OWNER", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrincipal_HasRole(t *testing.T) {
	member := Principal{Role: RoleMember}

	if !member.HasRole() {
		t.Error("empty role list should admit any role")
	}
	if !member.HasRole(RoleAdmin, RoleMember) {
		t.Error("member should pass ADMIN,MEMBER gate")
	}
	if member.HasRole(RoleAdmin) {
		t.Error("member should not pass ADMIN gate")
	}
}
