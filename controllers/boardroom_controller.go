package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"boardroom-backend/config"
	"boardroom-backend/models"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Get Boardrooms (GET /api/boardrooms)
// ----------------------------------------------------

func GetBoardrooms(c *gin.Context) {
	var rooms []models.Boardroom
	config.DB.Preload("Location").Find(&rooms)

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Create Boardroom (POST /api/boardrooms)
// ----------------------------------------------------

func CreateBoardroom(c *gin.Context) {
	var room models.Boardroom

	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("CreateBoardroom bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	room.RoomCode = strings.TrimSpace(room.RoomCode)
	if room.RoomCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Room code is required.",
		})
		return
	}

	// LocationID of 0 would insert a broken FK; validate when provided.
	if room.LocationID != nil {
		var loc models.Location
		if err := config.DB.Where("id = ?", *room.LocationID).First(&loc).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid locationId provided.",
			})
			return
		}
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room code '%s' already exists.", room.RoomCode),
			})
			return
		}

		log.Printf("CreateBoardroom DB error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Boardroom (PATCH /api/boardrooms/:id)
// ----------------------------------------------------

func UpdateBoardroom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// protect immutable fields
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Boardroom{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("UpdateBoardroom error for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Boardroom updated successfully",
	})
}

// ----------------------------------------------------
// 4. Delete Boardroom (DELETE /api/boardrooms/:id)
// ----------------------------------------------------

func DeleteBoardroom(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Boardroom{})
	if result.Error != nil {
		log.Printf("DeleteBoardroom DB error (ID: %s): %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete boardroom.",
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Boardroom with ID %s not found.", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Boardroom deleted successfully",
	})
}
