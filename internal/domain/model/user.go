package model

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleManager       Role = "MANAGER"
	RoleFRStaff       Role = "FR_STAFF"
	RoleCKStaff       Role = "CK_STAFF"
	RoleSCCoordinator Role = "SC_COORDINATOR"
)

// StaffRoles is every role that can sign in.
var StaffRoles = []Role{RoleAdmin, RoleManager, RoleFRStaff, RoleCKStaff, RoleSCCoordinator}

func (r Role) Valid() bool {
	for _, s := range StaffRoles {
		if r == s {
			return true
		}
	}
	return false
}

// CrossStore reports whether the role may address stores other than its own.
func (r Role) CrossStore() bool {
	return r == RoleAdmin || r == RoleSCCoordinator
}

// Identity is the verified caller attached to a request by the auth middleware.
type Identity struct {
	ID      int64
	Role    Role
	StoreID *int64
}

// OwnsStore is true when the identity is assigned to storeID.
func (i Identity) OwnsStore(storeID int64) bool {
	return i.StoreID != nil && *i.StoreID == storeID
}
