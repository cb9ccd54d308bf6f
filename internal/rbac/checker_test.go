package rbac

import "testing"

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"user", "quiz:view", true},
		{"user", "score:submit", true},
		{"user", "question:view-safe", true},
		{"user", "question:view-all", false},
		{"user", "subject:create", false},
		{"user", "users:list", false},
		{"admin", "subject:create", true},
		{"admin", "anything:at-all", true},
		{"", "quiz:view", false},
		{"ghost", "quiz:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("user", "question:view-all", "question:view-safe") {
		t.Error("expected user to pass with one matching permission")
	}
	if c.Any("user", "question:view-all", "users:list") {
		t.Error("expected user to fail with no matching permission")
	}
}
