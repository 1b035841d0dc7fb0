package workflow

import "fmt"

// Role is the closed set of actor roles.
type Role string

const (
	RoleUser           Role = "USER"
	RoleEmployee       Role = "EMPLOYEE"
	RoleSeniorEmployee Role = "SENIOR_EMPLOYEE"
	RoleAdmin          Role = "ADMIN"
)

// Staff reports whether the role holds internal review duties.
func (r Role) Staff() bool {
	return r == RoleEmployee || r == RoleSeniorEmployee || r == RoleAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleSeniorEmployee, RoleAdmin:
		return true
	}
	return false
}

// Actor identifies who is performing an operation. Authenticated is false
// for anonymous viewers of the public feed.
type Actor struct {
	ID            string
	Role          Role
	Name          string
	Authenticated bool
}

// GuardResult is the outcome of a guard evaluation. Denials carry the
// error kind they map to so callers can propagate the taxonomy directly.
type GuardResult struct {
	Allowed bool
	Reason  string
	kind    error
}

// Error returns the guard result as a typed error if denied, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	kind := r.kind
	if kind == nil {
		kind = ErrUnauthorized
	}
	return fmt.Errorf("%w: %s", kind, r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(kind error, format string, args ...interface{}) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), kind: kind}
}

// CanCreateComplaint evaluates the create action. Only citizens file
// complaints; staff act on them.
func CanCreateComplaint(actor Actor) GuardResult {
	if !actor.Authenticated {
		return deny(ErrUnauthorized, "authentication required to file a complaint")
	}
	if actor.Role != RoleUser {
		return deny(ErrUnauthorized, "role %s may not file complaints", actor.Role)
	}
	return allow()
}

// CanChangeStatus evaluates the status-change action. Admin only.
func CanChangeStatus(actor Actor) GuardResult {
	if actor.Role != RoleAdmin {
		return deny(ErrUnauthorized, "role %s may not change complaint status", actor.Role)
	}
	return allow()
}

// CanAssignEmployee evaluates the assignment action. Admin only, and the
// assignee must hold a reviewing role.
func CanAssignEmployee(actor Actor, assigneeRole Role) GuardResult {
	if actor.Role != RoleAdmin {
		return deny(ErrUnauthorized, "role %s may not assign complaints", actor.Role)
	}
	if assigneeRole != RoleEmployee && assigneeRole != RoleSeniorEmployee {
		return deny(ErrValidation, "assignee must hold an employee role, not %s", assigneeRole)
	}
	return allow()
}

// EscalationContext carries the complaint state an escalation guard needs.
type EscalationContext struct {
	Status           ComplaintStatus
	AlreadyEscalated bool
	TargetSeniorRole Role
	Reason           string
}

// CanEscalate evaluates the escalate action. Escalation is a one-way fact:
// admin only, complaint must be under review, and only once.
func CanEscalate(actor Actor, ctx EscalationContext) GuardResult {
	if actor.Role != RoleAdmin {
		return deny(ErrUnauthorized, "role %s may not escalate complaints", actor.Role)
	}
	if ctx.AlreadyEscalated {
		return deny(ErrAlreadyEscalated, "complaint has already been escalated")
	}
	if ctx.Status != StatusUnderReview {
		return deny(ErrInvalidTransition, "escalation requires status %s, have %s", StatusUnderReview, ctx.Status)
	}
	if ctx.TargetSeniorRole != RoleSeniorEmployee {
		return deny(ErrValidation, "escalation target must be a senior employee, not %s", ctx.TargetSeniorRole)
	}
	if ctx.Reason == "" {
		return deny(ErrValidation, "escalation reason is required")
	}
	return allow()
}

// CanViewQueue evaluates assigned-queue access. Employees see their own
// queue, seniors additionally see complaints escalated to them, admins
// see everything.
func CanViewQueue(actor Actor) GuardResult {
	if !actor.Role.Staff() {
		return deny(ErrUnauthorized, "role %s has no assigned queue", actor.Role)
	}
	return allow()
}
