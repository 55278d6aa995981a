package auth

import "github.com/mherrero/mimapa-be/internal/models"

// CanWrite reports whether the user may create or delete items. Reads only
// need a resolved identity.
func CanWrite(user models.User) bool {
	return user.Role == models.RoleAdmin
}
