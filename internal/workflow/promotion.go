package workflow

// PromotionStatus represents the state of a senior-promotion request.
type PromotionStatus string

const (
	PromotionPending  PromotionStatus = "PENDING"
	PromotionApproved PromotionStatus = "APPROVED"
	PromotionRejected PromotionStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s PromotionStatus) Terminal() bool {
	return s == PromotionApproved || s == PromotionRejected
}

// EligibilityThreshold is the resolution rate (percent) at which a
// request is displayed as eligible. It is informational only and never
// gates the approve action.
const EligibilityThreshold = 80.0

// CanSubmitPromotion evaluates whether an actor may file a promotion
// request. Only regular employees apply; seniors already hold the role.
func CanSubmitPromotion(actor Actor) GuardResult {
	if !actor.Authenticated {
		return deny(ErrUnauthorized, "authentication required")
	}
	if actor.Role != RoleEmployee {
		return deny(ErrUnauthorized, "role %s may not request senior promotion", actor.Role)
	}
	return allow()
}

// CanApprovePromotion evaluates the approve action against the request's
// current status. A terminal request yields AlreadyResolved so the second
// of two racing admins gets a definitive rejection.
func CanApprovePromotion(actor Actor, status PromotionStatus) GuardResult {
	if actor.Role != RoleAdmin {
		return deny(ErrUnauthorized, "role %s may not approve promotion requests", actor.Role)
	}
	if status.Terminal() {
		return deny(ErrAlreadyResolved, "request is already %s", status)
	}
	return allow()
}

// CanRejectPromotion evaluates the reject action. A rejection reason is
// mandatory; it is stored as admin notes for the employee.
func CanRejectPromotion(actor Actor, status PromotionStatus, reason string) GuardResult {
	if actor.Role != RoleAdmin {
		return deny(ErrUnauthorized, "role %s may not reject promotion requests", actor.Role)
	}
	if status.Terminal() {
		return deny(ErrAlreadyResolved, "request is already %s", status)
	}
	if reason == "" {
		return deny(ErrValidation, "rejection reason is required")
	}
	return allow()
}
