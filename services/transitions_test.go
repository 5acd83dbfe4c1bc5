package services

import (
	"errors"
	"testing"

	"boardroom-backend/models"
)

func TestRuleFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		action  Action
		role    string
		from    string
		wantErr error
		wantTo  string
	}{
		{"approve pending as admin", ActionApprove, models.RoleAdmin, models.BookingStatusPending, nil, models.BookingStatusConfirmed},
		{"approve pending as manager", ActionApprove, models.RoleManager, models.BookingStatusPending, nil, models.BookingStatusConfirmed},
		{"approve confirmed is invalid", ActionApprove, models.RoleAdmin, models.BookingStatusConfirmed, ErrInvalidTransition, ""},
		{"approve cancelled is invalid", ActionApprove, models.RoleAdmin, models.BookingStatusCancelled, ErrInvalidTransition, ""},
		{"reject pending refunds", ActionReject, models.RoleManager, models.BookingStatusPending, nil, models.BookingStatusCancelled},
		{"reject confirmed is invalid", ActionReject, models.RoleManager, models.BookingStatusConfirmed, ErrInvalidTransition, ""},
		{"cancel pending", ActionCancel, models.RoleAdmin, models.BookingStatusPending, nil, models.BookingStatusCancelled},
		{"cancel confirmed", ActionCancel, models.RoleAdmin, models.BookingStatusConfirmed, nil, models.BookingStatusCancelled},
		{"cancel cancelled is invalid", ActionCancel, models.RoleAdmin, models.BookingStatusCancelled, ErrInvalidTransition, ""},
		{"reconfirm cancelled", ActionReconfirm, models.RoleManager, models.BookingStatusCancelled, nil, models.BookingStatusConfirmed},
		{"reconfirm pending is invalid", ActionReconfirm, models.RoleManager, models.BookingStatusPending, ErrInvalidTransition, ""},
		{"edit cancelled is invalid", ActionEdit, models.RoleAdmin, models.BookingStatusCancelled, ErrInvalidTransition, ""},
		{"delete from any status", ActionDelete, models.RoleAdmin, models.BookingStatusCancelled, nil, ""},
		{"delete requires admin", ActionDelete, models.RoleManager, models.BookingStatusPending, ErrUnauthorized, ""},
		{"user cannot approve", ActionApprove, models.RoleUser, models.BookingStatusPending, ErrUnauthorized, ""},
		{"financeadmin cannot cancel", ActionCancel, models.RoleFinanceAdmin, models.BookingStatusPending, ErrUnauthorized, ""},
		{"unknown action", Action("teleport"), models.RoleAdmin, models.BookingStatusPending, ErrInvalidTransition, ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rule, err := ruleFor(tc.action, tc.role, tc.from)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ruleFor(%s, %s, %s) err = %v, want %v", tc.action, tc.role, tc.from, err, tc.wantErr)
			}
			if err == nil && rule.to != tc.wantTo {
				t.Fatalf("rule.to = %q, want %q", rule.to, tc.wantTo)
			}
		})
	}
}

// An unauthorized caller must get ErrUnauthorized even when the state
// precondition would also fail, so role errors never leak booking state.
func TestRuleForRoleCheckedBeforeState(t *testing.T) {
	t.Parallel()

	_, err := ruleFor(ActionApprove, models.RoleUser, models.BookingStatusConfirmed)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got err %v, want ErrUnauthorized", err)
	}
}

func TestRuleForLedgerEffects(t *testing.T) {
	t.Parallel()

	effects := map[Action]ledgerEffect{
		ActionApprove:   effectNone,
		ActionReject:    effectRefund,
		ActionCancel:    effectRefund,
		ActionReconfirm: effectRedebit,
		ActionEdit:      effectAdjust,
		ActionDelete:    effectDeleteRefund,
	}
	froms := map[Action]string{
		ActionApprove:   models.BookingStatusPending,
		ActionReject:    models.BookingStatusPending,
		ActionCancel:    models.BookingStatusConfirmed,
		ActionReconfirm: models.BookingStatusCancelled,
		ActionEdit:      models.BookingStatusPending,
		ActionDelete:    models.BookingStatusPending,
	}

	for action, want := range effects {
		rule, err := ruleFor(action, models.RoleAdmin, froms[action])
		if err != nil {
			t.Fatalf("ruleFor(%s) err = %v", action, err)
		}
		if rule.effect != want {
			t.Fatalf("effect for %s = %d, want %d", action, rule.effect, want)
		}
	}
}

func TestFinanceTransition(t *testing.T) {
	t.Parallel()

	pending := models.FinancePending
	approved := models.FinanceApproved

	t.Run("financeadmin finalizes a pending decision once", func(t *testing.T) {
		t.Parallel()
		if err := financeTransition(models.RoleFinanceAdmin, &pending, models.FinanceApproved); err != nil {
			t.Fatalf("first decision failed: %v", err)
		}
	})

	t.Run("financeadmin cannot change a settled decision", func(t *testing.T) {
		t.Parallel()
		err := financeTransition(models.RoleFinanceAdmin, &approved, models.FinanceRejected)
		if !errors.Is(err, ErrAlreadyProcessed) {
			t.Fatalf("got err %v, want ErrAlreadyProcessed", err)
		}
	})

	t.Run("manager can overwrite any decision", func(t *testing.T) {
		t.Parallel()
		if err := financeTransition(models.RoleManager, &approved, models.FinanceRejected); err != nil {
			t.Fatalf("manager override failed: %v", err)
		}
	})

	t.Run("other roles are rejected", func(t *testing.T) {
		t.Parallel()
		for _, role := range []string{models.RoleAdmin, models.RoleUser, "guest"} {
			err := financeTransition(role, &pending, models.FinanceApproved)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("role %q: got err %v, want ErrUnauthorized", role, err)
			}
		}
	})

	t.Run("unknown target status is invalid", func(t *testing.T) {
		t.Parallel()
		err := financeTransition(models.RoleManager, &pending, "finance-maybe")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("got err %v, want ErrInvalidTransition", err)
		}
	})
}
