// Package authz is the authorization matrix: pure decisions over
// (role, team, resource team, action). No I/O happens here; callers read
// the rows they need and consult the matrix inside the same transaction.
package authz

import "em-check/internal/models"

type Action string

const (
	ActionView           Action = "view"
	ActionCreateTemplate Action = "create_template"
	ActionEditTemplate   Action = "edit_template"
	ActionCreateRecord   Action = "create_record"
	ActionEditRecord     Action = "edit_record"
)

// Actor is the authenticated identity a decision is made for.
type Actor struct {
	ID   uint
	Role models.UserRole
	Team string
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Allowed: false, Reason: r} }

// Authorize decides whether actor may perform action against a resource
// owned by resourceTeam.
func Authorize(actor Actor, action Action, resourceTeam string) Decision {
	if actor.Role == models.RoleSuperAdmin {
		return allow()
	}

	switch action {
	case ActionView:
		if actor.Team == resourceTeam {
			return allow()
		}
		return deny("resource belongs to another team")
	case ActionCreateTemplate:
		if actor.Role == models.RoleAdmin {
			return allow()
		}
		return deny("only admins may create templates")
	case ActionEditTemplate:
		if actor.Role != models.RoleAdmin {
			return deny("only admins may edit templates")
		}
		if actor.Team != resourceTeam {
			return deny("template belongs to another team")
		}
		return allow()
	case ActionCreateRecord:
		if actor.Team == resourceTeam {
			return allow()
		}
		return deny("template belongs to another team")
	case ActionEditRecord:
		return deny("only the super admin may edit records")
	}
	return deny("unknown action")
}

// CanChangeRole guards role changes. Only the super admin may change roles,
// and the single-super-admin invariant must hold: the super admin cannot be
// demoted, cannot demote itself, and no second super admin can be created.
func CanChangeRole(actor Actor, target *models.User, newRole models.UserRole) Decision {
	if actor.Role != models.RoleSuperAdmin {
		return deny("only the super admin may change roles")
	}
	if target.Role == models.RoleSuperAdmin && newRole != models.RoleSuperAdmin {
		return deny("the super admin cannot be demoted")
	}
	if actor.ID == target.ID && newRole != models.RoleSuperAdmin {
		return deny("cannot demote your own account")
	}
	if newRole == models.RoleSuperAdmin && target.Role != models.RoleSuperAdmin {
		return deny("there can be only one super admin")
	}
	return allow()
}

// CanChangeTeam guards team reassignment. The super admin carries no team.
func CanChangeTeam(actor Actor, target *models.User, newTeam string) Decision {
	if actor.Role != models.RoleSuperAdmin {
		return deny("only the super admin may change teams")
	}
	if newTeam == "" {
		return deny("team must not be empty")
	}
	if target.Role == models.RoleSuperAdmin {
		return deny("the super admin has no team")
	}
	return allow()
}
