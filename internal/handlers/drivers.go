package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"gorm.io/gorm"
)

type DriverInput struct {
	Name          string `json:"name" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	Aadhar        string `json:"aadhar"`
	PAN           string `json:"pan"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bankName"`
	Branch        string `json:"branch"`
}

// CreateDriver adds a driver to the caller's fleet.
func CreateDriver(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver := models.Driver{
			Name:          input.Name,
			LicenseNumber: input.LicenseNumber,
			Aadhar:        input.Aadhar,
			PAN:           input.PAN,
			Phone:         input.Phone,
			Address:       input.Address,
			AccountNumber: input.AccountNumber,
			IFSC:          input.IFSC,
			BankName:      input.BankName,
			Branch:        input.Branch,
			VendorID:      c.GetUint("vendorId"),
		}

		if err := db.Create(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create driver"})
			return
		}

		notifier.NotifyVendor(driver.VendorID, services.EventDriverNew, &driver)

		c.JSON(201, driver)
	}
}

func GetDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var drivers []models.Driver
		if err := db.Where("vendor_id = ?", c.GetUint("vendorId")).Find(&drivers).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		c.JSON(200, drivers)
	}
}

func GetDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&driver).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		c.JSON(200, driver)
	}
}

func UpdateDriver(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&driver).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var input DriverInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		driver.Name = input.Name
		driver.LicenseNumber = input.LicenseNumber
		driver.Aadhar = input.Aadhar
		driver.PAN = input.PAN
		driver.Phone = input.Phone
		driver.Address = input.Address
		driver.AccountNumber = input.AccountNumber
		driver.IFSC = input.IFSC
		driver.BankName = input.BankName
		driver.Branch = input.Branch

		if err := db.Save(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update driver"})
			return
		}

		notifier.NotifyVendor(driver.VendorID, services.EventDriverUpdate, &driver)

		c.JSON(200, driver)
	}
}

func DeleteDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var driver models.Driver
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&driver).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		if err := db.Delete(&driver).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete driver"})
			return
		}

		c.JSON(200, gin.H{"message": "Driver deleted"})
	}
}
