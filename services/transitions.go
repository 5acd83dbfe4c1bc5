package services

import "boardroom-backend/models"

// Action names the lifecycle operations a caller can request on a booking.
type Action string

const (
	ActionCreate    Action = "create"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionCancel    Action = "cancel"
	ActionReconfirm Action = "reconfirm"
	ActionEdit      Action = "edit"
	ActionDelete    Action = "delete"
)

// ledgerEffect names what the token ledger does alongside a transition.
type ledgerEffect int

const (
	effectNone         ledgerEffect = iota
	effectRefund                    // credit tokens_used back to the custodian
	effectRedebit                   // balance-checked debit of tokens_used
	effectAdjust                    // signed delta between old and new token cost
	effectDeleteRefund              // refund unless already cancelled with no owner
)

// transitionRule is one row of the lifecycle table: which statuses the
// action applies to, where it lands, who may request it, and what the ledger
// does. The table is the single source of truth; handlers never hard-code
// status checks.
type transitionRule struct {
	from   []string
	to     string // empty: status unchanged (edit) or row removed (delete)
	roles  []string
	effect ledgerEffect
}

var transitionTable = map[Action]transitionRule{
	ActionCreate: {
		roles: []string{models.RoleAdmin, models.RoleManager, models.RoleUser},
	},
	ActionApprove: {
		from:   []string{models.BookingStatusPending},
		to:     models.BookingStatusConfirmed,
		roles:  []string{models.RoleAdmin, models.RoleManager},
		effect: effectNone, // tokens were debited at creation
	},
	ActionReject: {
		from:   []string{models.BookingStatusPending},
		to:     models.BookingStatusCancelled,
		roles:  []string{models.RoleAdmin, models.RoleManager},
		effect: effectRefund,
	},
	ActionCancel: {
		from:   []string{models.BookingStatusPending, models.BookingStatusConfirmed},
		to:     models.BookingStatusCancelled,
		roles:  []string{models.RoleAdmin, models.RoleManager},
		effect: effectRefund,
	},
	ActionReconfirm: {
		from:   []string{models.BookingStatusCancelled},
		to:     models.BookingStatusConfirmed,
		roles:  []string{models.RoleAdmin, models.RoleManager},
		effect: effectRedebit,
	},
	ActionEdit: {
		from:   []string{models.BookingStatusPending, models.BookingStatusConfirmed},
		roles:  []string{models.RoleAdmin, models.RoleManager},
		effect: effectAdjust,
	},
	ActionDelete: {
		from: []string{models.BookingStatusPending, models.BookingStatusConfirmed,
			models.BookingStatusCancelled},
		roles:  []string{models.RoleAdmin},
		effect: effectDeleteRefund,
	},
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ruleFor authorizes role for action from the given status. Authorization is
// checked before the state precondition so a caller without the role learns
// nothing about the booking's current state.
func ruleFor(action Action, role string, fromStatus string) (transitionRule, error) {
	rule, ok := transitionTable[action]
	if !ok {
		return transitionRule{}, ErrInvalidTransition
	}
	if !contains(rule.roles, role) {
		return transitionRule{}, ErrUnauthorized
	}
	if len(rule.from) > 0 && !contains(rule.from, fromStatus) {
		return transitionRule{}, ErrInvalidTransition
	}
	return rule, nil
}

// financeTransition validates the finance sub-status flow for external
// bookings. A financeadmin may finalize finance-pending exactly once; a
// manager may overwrite any value (escalation override).
func financeTransition(role string, current *string, next string) error {
	if next != models.FinanceApproved && next != models.FinanceRejected && next != models.FinancePending {
		return ErrInvalidTransition
	}
	switch role {
	case models.RoleManager:
		return nil
	case models.RoleFinanceAdmin:
		if current == nil || *current != models.FinancePending {
			return ErrAlreadyProcessed
		}
		return nil
	default:
		return ErrUnauthorized
	}
}
