package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"boardroom-backend/config"
	"boardroom-backend/models"
	"boardroom-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController manages internal users and their token accounts.
type UserController struct {
	Ledger *services.LedgerService
}

func NewUserController(ledger *services.LedgerService) *UserController {
	return &UserController{Ledger: ledger}
}

type createUserPayload struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	TokenLimit int    `json:"token_limit"`
}

type grantTokensPayload struct {
	Amount int `json:"amount" binding:"required"`
}

func userIDParam(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidUserId", "message": "user id must be a positive integer"},
		})
		return 0, false
	}
	return uint(parsed), true
}

func (ctrl *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("full_name ASC").Find(&users).Error; err != nil {
		log.Printf("GetUsers error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.fetchUsers", "message": "failed to fetch users"},
		})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": gin.H{"code": "error.userNotFound", "message": "user not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "internal server error"},
		})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) CreateUser(c *gin.Context) {
	var payload createUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	limit := payload.TokenLimit
	if limit <= 0 {
		limit = 20
	}
	user := models.User{
		FullName:        strings.TrimSpace(payload.FullName),
		Email:           strings.TrimSpace(payload.Email),
		Phone:           strings.TrimSpace(payload.Phone),
		Active:          true,
		TokenLimit:      limit,
		TokensUsed:      0,
		TokensAvailable: limit,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			c.JSON(http.StatusConflict, gin.H{
				"error": gin.H{"code": "error.duplicateEmail", "message": "a user with this email already exists"},
			})
			return
		}
		log.Printf("CreateUser DB error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "failed to create user"},
		})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	// Token balances only move through the ledger.
	delete(updateData, "id")
	delete(updateData, "tokens_used")
	delete(updateData, "tokens_available")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.User{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("UpdateUser error for %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "update failed"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User updated successfully"})
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	result := config.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Printf("DeleteUser DB error (ID: %d): %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "failed to delete user"},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.userNotFound", "message": "user not found"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "User deleted"})
}

// GrantTokens tops up a user's available balance (admin bonus, may exceed
// the monthly limit).
func (ctrl *UserController) GrantTokens(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var payload grantTokensPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidAmount", "message": "amount must be a positive integer"},
		})
		return
	}

	if err := ctrl.Ledger.GrantUser(id, payload.Amount); err != nil {
		respondServiceError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": user})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RenewTokens resets every account for a new month.
func (ctrl *UserController) RenewTokens(c *gin.Context) {
	if err := ctrl.Ledger.RenewAll(); err != nil {
		log.Printf("RenewTokens error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.renewFailed", "message": "failed to renew token accounts"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Token accounts renewed"})
}

// GetTokenPool reports the shared pool, creating it on first access.
func (ctrl *UserController) GetTokenPool(c *gin.Context) {
	var pool *models.TokenPool
	err := ctrl.Ledger.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		pool, txErr = ctrl.Ledger.GetPool(tx)
		return txErr
	})
	if err != nil {
		log.Printf("GetTokenPool error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "error.internal", "message": "failed to load token pool"},
		})
		return
	}
	c.JSON(http.StatusOK, pool)
}
