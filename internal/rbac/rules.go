package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"user": {
		"subject:view",
		"chapter:view",
		"quiz:view",
		"question:view-safe",
		"score:submit",
		"attempt:save",
		"score:view-own",
		"user:profile",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
