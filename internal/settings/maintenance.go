package settings

import (
	"strings"

	"darna-backend/internal/domain"
)

// LoginPath is the one route that stays reachable during maintenance so
// admins can get in.
const LoginPath = "/login"

// MaintenanceBlocked is the request-time access predicate: block unless
// maintenance mode is off, the user is an admin, or the request is for the
// login route. Pure decision function; callers supply the current settings
// snapshot's flag, the resolved role (RoleUser for anonymous visitors), and
// the request path.
func MaintenanceBlocked(maintenanceOn bool, role domain.Role, path string) bool {
	if !maintenanceOn {
		return false
	}
	if role == domain.RoleAdmin {
		return false
	}
	if path == LoginPath || strings.HasSuffix(path, "/auth/login") {
		return false
	}
	return true
}
