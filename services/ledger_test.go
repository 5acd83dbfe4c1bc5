package services

import (
	"errors"
	"testing"

	"boardroom-backend/models"
)

func account(limit, used, available int) *models.User {
	return &models.User{
		TokenLimit:      limit,
		TokensUsed:      used,
		TokensAvailable: available,
	}
}

func TestDebitAccount(t *testing.T) {
	t.Parallel()

	t.Run("moves tokens from available to used", func(t *testing.T) {
		t.Parallel()
		u := account(10, 2, 8)
		if err := debitAccount(u, 3); err != nil {
			t.Fatalf("debit failed: %v", err)
		}
		if u.TokensAvailable != 5 || u.TokensUsed != 5 {
			t.Fatalf("after debit: available=%d used=%d, want 5/5", u.TokensAvailable, u.TokensUsed)
		}
	})

	t.Run("insufficient balance fails whole and leaves state untouched", func(t *testing.T) {
		t.Parallel()
		u := account(10, 7, 3)
		err := debitAccount(u, 4)
		if !errors.Is(err, ErrInsufficientTokens) {
			t.Fatalf("got err %v, want ErrInsufficientTokens", err)
		}
		if u.TokensAvailable != 3 || u.TokensUsed != 7 {
			t.Fatalf("failed debit mutated state: available=%d used=%d", u.TokensAvailable, u.TokensUsed)
		}
	})

	t.Run("exact balance drains to zero", func(t *testing.T) {
		t.Parallel()
		u := account(10, 7, 3)
		if err := debitAccount(u, 3); err != nil {
			t.Fatalf("debit failed: %v", err)
		}
		if u.TokensAvailable != 0 {
			t.Fatalf("available = %d, want 0", u.TokensAvailable)
		}
	})
}

func TestCreditAccount(t *testing.T) {
	t.Parallel()

	t.Run("refund restores the balance", func(t *testing.T) {
		t.Parallel()
		u := account(10, 5, 5)
		creditAccount(u, 2)
		if u.TokensAvailable != 7 || u.TokensUsed != 3 {
			t.Fatalf("after credit: available=%d used=%d, want 7/3", u.TokensAvailable, u.TokensUsed)
		}
	})

	t.Run("used is clamped at zero", func(t *testing.T) {
		t.Parallel()
		u := account(10, 1, 9)
		creditAccount(u, 5)
		if u.TokensUsed != 0 {
			t.Fatalf("used = %d, want 0", u.TokensUsed)
		}
		if u.TokensAvailable != 14 {
			t.Fatalf("available = %d, want 14", u.TokensAvailable)
		}
	})
}

// Booking then refund must conserve the balance exactly.
func TestDebitCreditRoundTrip(t *testing.T) {
	t.Parallel()

	u := account(10, 0, 10)
	if err := debitAccount(u, 4); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	creditAccount(u, 4)
	if u.TokensAvailable != 10 || u.TokensUsed != 0 {
		t.Fatalf("round trip drifted: available=%d used=%d, want 10/0", u.TokensAvailable, u.TokensUsed)
	}
}

func TestAdjustAccount(t *testing.T) {
	t.Parallel()

	t.Run("positive delta is a checked debit", func(t *testing.T) {
		t.Parallel()

		// Extending a 2h booking to 3h costs one extra token.
		u := account(10, 2, 0)
		err := adjustAccount(u, 1)
		if !errors.Is(err, ErrInsufficientTokens) {
			t.Fatalf("got err %v, want ErrInsufficientTokens", err)
		}
	})

	t.Run("negative delta is a credit", func(t *testing.T) {
		t.Parallel()
		u := account(10, 3, 7)
		if err := adjustAccount(u, -2); err != nil {
			t.Fatalf("adjust failed: %v", err)
		}
		if u.TokensAvailable != 9 || u.TokensUsed != 1 {
			t.Fatalf("after adjust: available=%d used=%d, want 9/1", u.TokensAvailable, u.TokensUsed)
		}
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		t.Parallel()
		u := account(10, 3, 7)
		if err := adjustAccount(u, 0); err != nil {
			t.Fatalf("adjust failed: %v", err)
		}
		if u.TokensAvailable != 7 || u.TokensUsed != 3 {
			t.Fatalf("zero adjust mutated state: available=%d used=%d", u.TokensAvailable, u.TokensUsed)
		}
	})
}

func TestRenewAccountIsIdempotent(t *testing.T) {
	t.Parallel()

	u := account(20, 12, 3)
	renewAccount(u)
	if u.TokensAvailable != 20 || u.TokensUsed != 0 {
		t.Fatalf("after renew: available=%d used=%d, want 20/0", u.TokensAvailable, u.TokensUsed)
	}
	renewAccount(u)
	if u.TokensAvailable != 20 || u.TokensUsed != 0 {
		t.Fatalf("second renew drifted: available=%d used=%d, want 20/0", u.TokensAvailable, u.TokensUsed)
	}
}

func TestPoolArithmetic(t *testing.T) {
	t.Parallel()

	t.Run("debit and credit mirror the user account rules", func(t *testing.T) {
		t.Parallel()
		p := &models.TokenPool{InitialCount: 500, AvailableCount: 500}
		if err := debitPool(p, 10); err != nil {
			t.Fatalf("debit failed: %v", err)
		}
		creditPool(p, 10)
		if p.AvailableCount != 500 || p.TokensUsedThisMonth != 0 {
			t.Fatalf("round trip drifted: available=%d used=%d", p.AvailableCount, p.TokensUsedThisMonth)
		}
	})

	t.Run("empty pool rejects debit", func(t *testing.T) {
		t.Parallel()
		p := &models.TokenPool{AvailableCount: 0}
		if err := debitPool(p, 1); !errors.Is(err, ErrInsufficientTokens) {
			t.Fatalf("got err %v, want ErrInsufficientTokens", err)
		}
	})

	t.Run("usage counter clamps at zero", func(t *testing.T) {
		t.Parallel()
		p := &models.TokenPool{AvailableCount: 5, TokensUsedThisMonth: 1}
		creditPool(p, 3)
		if p.TokensUsedThisMonth != 0 {
			t.Fatalf("used this month = %d, want 0", p.TokensUsedThisMonth)
		}
	})

	t.Run("adjust routes by sign", func(t *testing.T) {
		t.Parallel()
		p := &models.TokenPool{AvailableCount: 2, TokensUsedThisMonth: 4}
		if err := adjustPool(p, 3); !errors.Is(err, ErrInsufficientTokens) {
			t.Fatalf("got err %v, want ErrInsufficientTokens", err)
		}
		if err := adjustPool(p, -2); err != nil {
			t.Fatalf("adjust failed: %v", err)
		}
		if p.AvailableCount != 4 || p.TokensUsedThisMonth != 2 {
			t.Fatalf("after adjust: available=%d used=%d, want 4/2", p.AvailableCount, p.TokensUsedThisMonth)
		}
	})
}
