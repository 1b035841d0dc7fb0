package workflow

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name        string
		current     ComplaintStatus
		target      ComplaintStatus
		policy      TransitionPolicy
		wantAllowed bool
	}{
		{
			name:        "NEW to UNDER_REVIEW",
			current:     StatusNew,
			target:      StatusUnderReview,
			wantAllowed: true,
		},
		{
			name:        "UNDER_REVIEW to RESOLVED",
			current:     StatusUnderReview,
			target:      StatusResolved,
			wantAllowed: true,
		},
		{
			name:        "backward RESOLVED to NEW",
			current:     StatusResolved,
			target:      StatusNew,
			wantAllowed: false,
		},
		{
			name:        "backward UNDER_REVIEW to NEW",
			current:     StatusUnderReview,
			target:      StatusNew,
			wantAllowed: false,
		},
		{
			name:        "same status is not forward",
			current:     StatusUnderReview,
			target:      StatusUnderReview,
			wantAllowed: false,
		},
		{
			name:        "skip NEW to RESOLVED denied by default",
			current:     StatusNew,
			target:      StatusResolved,
			wantAllowed: false,
		},
		{
			name:        "skip NEW to RESOLVED allowed under skip policy",
			current:     StatusNew,
			target:      StatusResolved,
			policy:      TransitionPolicy{AllowSkip: true},
			wantAllowed: true,
		},
		{
			name:        "backward still denied under skip policy",
			current:     StatusResolved,
			target:      StatusUnderReview,
			policy:      TransitionPolicy{AllowSkip: true},
			wantAllowed: false,
		},
		{
			name:        "unknown current status",
			current:     ComplaintStatus("IN_PROGRESS"),
			target:      StatusResolved,
			wantAllowed: false,
		},
		{
			name:        "unknown target status",
			current:     StatusNew,
			target:      ComplaintStatus("CLOSED"),
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanTransition(tt.current, tt.target, tt.policy)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanTransition(%s, %s) Allowed = %v, want %v",
					tt.current, tt.target, result.Allowed, tt.wantAllowed)
			}

			err := result.Error()
			if tt.wantAllowed && err != nil {
				t.Errorf("CanTransition().Error() = %v, want nil", err)
			}
			if !tt.wantAllowed && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("CanTransition().Error() = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestStatusNeverDecreases(t *testing.T) {
	// Property: across every ordered pair, a transition that is allowed
	// always moves to a strictly higher rank.
	all := []ComplaintStatus{StatusNew, StatusUnderReview, StatusResolved}
	for _, policy := range []TransitionPolicy{{}, {AllowSkip: true}} {
		for i, from := range all {
			for j, to := range all {
				allowed := CanTransition(from, to, policy).Allowed
				if allowed && j <= i {
					t.Errorf("policy %+v allows %s -> %s, which is not forward", policy, from, to)
				}
			}
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := StatusUnderReview.DisplayLabel(); got != "IN PROGRESS" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "IN PROGRESS")
	}
	if got := StatusNew.DisplayLabel(); got != "NEW" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "NEW")
	}
	if got := StatusResolved.DisplayLabel(); got != "RESOLVED" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "RESOLVED")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []ComplaintStatus{StatusNew, StatusUnderReview, StatusResolved} {
		if !s.Valid() {
			t.Errorf("%s.Valid() = false, want true", s)
		}
	}
	if ComplaintStatus("IN_PROGRESS").Valid() {
		t.Error(`ComplaintStatus("IN_PROGRESS").Valid() = true, want false`)
	}
}
