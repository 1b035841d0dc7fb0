package workflow

// ComplaintStatus represents the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusNew         ComplaintStatus = "NEW"
	StatusUnderReview ComplaintStatus = "UNDER_REVIEW"
	StatusResolved    ComplaintStatus = "RESOLVED"
)

// statusRank defines the monotonic forward ordering of the lifecycle.
// A transition is only ever allowed to a strictly higher rank.
var statusRank = map[ComplaintStatus]int{
	StatusNew:         0,
	StatusUnderReview: 1,
	StatusResolved:    2,
}

// Valid reports whether s is one of the three real lifecycle states.
func (s ComplaintStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// DisplayLabel maps a status to its list-view label. UNDER_REVIEW has
// historically been rendered as "IN PROGRESS" in some views; it is a
// label only, never a fourth state.
func (s ComplaintStatus) DisplayLabel() string {
	if s == StatusUnderReview {
		return "IN PROGRESS"
	}
	return string(s)
}

// TransitionPolicy controls whether a transition may skip over an
// intermediate state (e.g. NEW directly to RESOLVED). Forward-only
// ordering is enforced regardless of the policy.
type TransitionPolicy struct {
	AllowSkip bool
}

// CanTransition evaluates whether a complaint may move from current to
// target under the given policy.
func CanTransition(current, target ComplaintStatus, policy TransitionPolicy) GuardResult {
	cur, ok := statusRank[current]
	if !ok {
		return deny(ErrInvalidTransition, "unknown current status %q", current)
	}
	tgt, ok := statusRank[target]
	if !ok {
		return deny(ErrInvalidTransition, "unknown target status %q", target)
	}
	if tgt <= cur {
		return deny(ErrInvalidTransition, "status may not move from %s to %s", current, target)
	}
	if !policy.AllowSkip && tgt != cur+1 {
		return deny(ErrInvalidTransition, "status must pass through intermediate states (%s to %s skips)", current, target)
	}
	return allow()
}
