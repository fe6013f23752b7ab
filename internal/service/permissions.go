package service

import "github.com/abdobody2040/PharmStockHub/internal/model"

// Permission names checked throughout the API layer.
const (
	PermManageUsers   = "canManageUsers"
	PermManageStock   = "canManageStock"
	PermMoveStock     = "canMoveStock"
	PermManageLookups = "canManageLookups"
	PermViewReports   = "canViewReports"
	PermViewMovements = "canViewMovements"
)

// rolePermissions is the static role → permission table. Permissions absent
// from a role's map resolve to false, as do unknown roles. The CEO role is
// not listed: HasPermission short-circuits it to true.
var rolePermissions = map[string]map[string]bool{
	model.RoleAdmin: {
		PermManageUsers:   true,
		PermManageStock:   true,
		PermMoveStock:     true,
		PermManageLookups: true,
		PermViewReports:   true,
		PermViewMovements: true,
	},
	model.RoleStockManager: {
		PermManageStock:   true,
		PermMoveStock:     true,
		PermViewReports:   true,
		PermViewMovements: true,
	},
	model.RoleMedicalRep: {
		PermViewMovements: true,
	},
}

// HasPermission resolves a role's named boolean flag. Unknown roles and
// unknown permission names deny.
func HasPermission(role, permission string) bool {
	if role == model.RoleCEO {
		return true
	}
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[permission]
}
