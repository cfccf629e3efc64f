package domain

// CanMutate reports whether user may modify a resource owned by ownerID.
// Admins may modify anything; everyone else only what they own. A resource
// without an owner can only be modified by an admin.
func CanMutate(user *User, ownerID string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	return ownerID != "" && user.ID == ownerID
}
