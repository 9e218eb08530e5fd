package auth

import "github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"

type Decision int

const (
	Deny Decision = iota
	Allow
)

// RequireRole allows exactly the required role. Roles are not ranked.
func RequireRole(actual, required domain.Role) Decision {
	if actual.Valid() && actual == required {
		return Allow
	}
	return Deny
}
