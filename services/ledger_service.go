package services

import (
	"errors"
	"fmt"

	"boardroom-backend/models"
	"boardroom-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService owns every token custody change: per-user accounts and the
// shared pool. All mutating methods take the ambient transaction handle so a
// balance change commits or rolls back together with the booking write that
// caused it.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// ---------------------------
// Pure account arithmetic
// ---------------------------

// debitAccount takes amount tokens from the account. Never partial: fails
// whole when the balance is short.
func debitAccount(u *models.User, amount int) error {
	if amount < 0 {
		return fmt.Errorf("negative debit amount %d", amount)
	}
	if u.TokensAvailable < amount {
		return ErrInsufficientTokens
	}
	u.TokensAvailable -= amount
	u.TokensUsed += amount
	return nil
}

// creditAccount refunds amount tokens. TokensUsed is clamped at zero so a
// refund can never drive it negative.
func creditAccount(u *models.User, amount int) {
	if amount < 0 {
		return
	}
	u.TokensAvailable += amount
	u.TokensUsed -= amount
	if u.TokensUsed < 0 {
		u.TokensUsed = 0
	}
}

// adjustAccount applies a signed delta: positive debits (balance-checked),
// negative credits.
func adjustAccount(u *models.User, delta int) error {
	if delta > 0 {
		return debitAccount(u, delta)
	}
	creditAccount(u, -delta)
	return nil
}

// renewAccount resets the account for a new month: usage cleared, the full
// monthly limit available again.
func renewAccount(u *models.User) {
	u.TokensUsed = 0
	u.TokensAvailable = u.TokenLimit
}

func debitPool(p *models.TokenPool, amount int) error {
	if amount < 0 {
		return fmt.Errorf("negative debit amount %d", amount)
	}
	if p.AvailableCount < amount {
		return ErrInsufficientTokens
	}
	p.AvailableCount -= amount
	p.TokensUsedThisMonth += amount
	return nil
}

func creditPool(p *models.TokenPool, amount int) {
	if amount < 0 {
		return
	}
	p.AvailableCount += amount
	p.TokensUsedThisMonth -= amount
	if p.TokensUsedThisMonth < 0 {
		p.TokensUsedThisMonth = 0
	}
}

func adjustPool(p *models.TokenPool, delta int) error {
	if delta > 0 {
		return debitPool(p, delta)
	}
	creditPool(p, -delta)
	return nil
}

// ---------------------------
// Transactional wrappers
// ---------------------------

// lockUser loads the user's account row FOR UPDATE inside tx.
func lockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("db error loading user %d: %w", userID, err)
	}
	return &user, nil
}

func saveAccount(tx *gorm.DB, u *models.User) error {
	err := tx.Model(&models.User{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"tokens_available": u.TokensAvailable,
			"tokens_used":      u.TokensUsed,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update token account %d: %w", u.ID, err)
	}
	return nil
}

// AdjustUser applies a signed token delta to one user account inside tx.
// Positive deltas are availability-checked debits.
func (s *LedgerService) AdjustUser(tx *gorm.DB, userID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	user, err := lockUser(tx, userID)
	if err != nil {
		return err
	}
	if err := adjustAccount(user, delta); err != nil {
		return err
	}
	return saveAccount(tx, user)
}

func (s *LedgerService) DebitUser(tx *gorm.DB, userID uint, amount int) error {
	return s.AdjustUser(tx, userID, amount)
}

func (s *LedgerService) CreditUser(tx *gorm.DB, userID uint, amount int) error {
	return s.AdjustUser(tx, userID, -amount)
}

// GetPool returns the singleton pool row, creating it with defaults on first
// access. Pass a transaction handle when the result feeds a decision.
func (s *LedgerService) GetPool(tx *gorm.DB) (*models.TokenPool, error) {
	var pool models.TokenPool
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Order("id ASC").First(&pool).Error
	if err == nil {
		return &pool, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("db error loading token pool: %w", err)
	}

	initial := utils.EnvIntOrDefault("TOKEN_POOL_INITIAL", 500)
	pool = models.TokenPool{
		InitialCount:        initial,
		AvailableCount:      initial,
		TokensUsedThisMonth: 0,
	}
	if err := tx.Create(&pool).Error; err != nil {
		return nil, fmt.Errorf("failed to create token pool: %w", err)
	}
	return &pool, nil
}

func savePool(tx *gorm.DB, p *models.TokenPool) error {
	err := tx.Model(&models.TokenPool{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"available_count":        p.AvailableCount,
			"tokens_used_this_month": p.TokensUsedThisMonth,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update token pool: %w", err)
	}
	return nil
}

// AdjustPool applies a signed token delta to the shared pool inside tx.
func (s *LedgerService) AdjustPool(tx *gorm.DB, delta int) error {
	if delta == 0 {
		return nil
	}
	pool, err := s.GetPool(tx)
	if err != nil {
		return err
	}
	if err := adjustPool(pool, delta); err != nil {
		return err
	}
	return savePool(tx, pool)
}

func (s *LedgerService) DebitPool(tx *gorm.DB, amount int) error {
	return s.AdjustPool(tx, amount)
}

func (s *LedgerService) CreditPool(tx *gorm.DB, amount int) error {
	return s.AdjustPool(tx, -amount)
}

// GrantUser tops up a user's available tokens without touching tokens_used.
// Administrative: may push available above limit - used.
func (s *LedgerService) GrantUser(userID uint, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("grant amount must be positive, got %d", amount)
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		user.TokensAvailable += amount
		return saveAccount(tx, user)
	})
}

// RenewAll resets every user account for a new month. Idempotent; the pool is
// untouched.
func (s *LedgerService) RenewAll() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&users).Error; err != nil {
			return fmt.Errorf("db error loading token accounts: %w", err)
		}
		for i := range users {
			renewAccount(&users[i])
			if err := saveAccount(tx, &users[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
