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

func GetLocations(c *gin.Context) {
	var locations []models.Location
	config.DB.Preload("Boardrooms").Find(&locations)

	c.JSON(http.StatusOK, locations)
}

func CreateLocation(c *gin.Context) {
	var location models.Location

	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	location.Name = strings.TrimSpace(location.Name)
	if location.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Location name is required.",
		})
		return
	}

	if err := config.DB.Create(&location).Error; err != nil {
		log.Printf("CreateLocation DB error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	c.JSON(http.StatusCreated, location)
}

func UpdateLocation(c *gin.Context) {
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

	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Location{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("UpdateLocation error for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Location updated successfully",
	})
}

// DeleteLocation removes a location; its boardrooms (and their bookings) go
// with it via the FK cascade.
func DeleteLocation(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Location{})
	if result.Error != nil {
		log.Printf("DeleteLocation DB error (ID: %s): %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete location.",
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Location with ID %s not found.", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Location deleted successfully",
	})
}
