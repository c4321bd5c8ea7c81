package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"gorm.io/gorm"
)

type VehicleInput struct {
	Type      string `json:"type"`
	Plate     string `json:"plate" binding:"required"`
	Model     string `json:"model"`
	Insurance string `json:"insurance"`
	Condition string `json:"condition"`
	Available *bool  `json:"available"`
}

func CreateVehicle(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		vehicle := models.Vehicle{
			Type:         input.Type,
			Plate:        input.Plate,
			VehicleModel: input.Model,
			Insurance:    input.Insurance,
			Condition:    input.Condition,
			Available:    true,
			VendorID:     c.GetUint("vendorId"),
		}
		if input.Available != nil {
			vehicle.Available = *input.Available
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create vehicle"})
			return
		}

		notifier.NotifyVendor(vehicle.VendorID, services.EventVehicleNew, &vehicle)

		c.JSON(201, vehicle)
	}
}

func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicles []models.Vehicle
		if err := db.Where("vendor_id = ?", c.GetUint("vendorId")).Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(200, vehicles)
	}
}

func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&vehicle).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		c.JSON(200, vehicle)
	}
}

func UpdateVehicle(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&vehicle).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		var input VehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		vehicle.Type = input.Type
		vehicle.Plate = input.Plate
		vehicle.VehicleModel = input.Model
		vehicle.Insurance = input.Insurance
		vehicle.Condition = input.Condition
		if input.Available != nil {
			vehicle.Available = *input.Available
		}

		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update vehicle"})
			return
		}

		notifier.NotifyVendor(vehicle.VendorID, services.EventVehicleUpdate, &vehicle)

		c.JSON(200, vehicle)
	}
}

func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&vehicle).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		if err := db.Delete(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete vehicle"})
			return
		}

		c.JSON(200, gin.H{"message": "Vehicle deleted"})
	}
}
