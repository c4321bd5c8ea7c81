package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"gorm.io/gorm"
)

type InvoiceInput struct {
	BookingID   *uint    `json:"bookingId"`
	Amount      *float64 `json:"amount"`
	Status      string   `json:"status" binding:"omitempty,oneof=Pending Paid"`
	ReportMonth string   `json:"reportMonth"` // e.g. '2025-08'
}

func CreateInvoice(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input InvoiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		invoice := models.Invoice{
			BookingID:   input.BookingID,
			VendorID:    c.GetUint("vendorId"),
			Status:      models.InvoiceStatusPending,
			SubmittedAt: &now,
			ReportMonth: input.ReportMonth,
		}
		if input.Amount != nil {
			invoice.Amount = *input.Amount
		}
		if input.Status != "" {
			invoice.Status = models.InvoiceStatus(input.Status)
		}

		if err := db.Create(&invoice).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create invoice"})
			return
		}

		notifier.NotifyVendor(invoice.VendorID, services.EventInvoiceNew, &invoice)

		c.JSON(201, invoice)
	}
}

// GetInvoices lists the caller's invoices, optionally filtered by status
// and report month.
func GetInvoices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Booking").Preload("Vendor").
			Where("vendor_id = ?", c.GetUint("vendorId"))
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if month := c.Query("month"); month != "" {
			query = query.Where("report_month = ?", month)
		}

		var invoices []models.Invoice
		if err := query.Find(&invoices).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch invoices"})
			return
		}

		c.JSON(200, invoices)
	}
}

func GetInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.Preload("Booking").Preload("Vendor").
			Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&invoice).Error; err != nil {
			c.JSON(404, gin.H{"error": "Invoice not found"})
			return
		}

		c.JSON(200, invoice)
	}
}

func UpdateInvoice(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&invoice).Error; err != nil {
			c.JSON(404, gin.H{"error": "Invoice not found"})
			return
		}

		var input InvoiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.BookingID != nil {
			invoice.BookingID = input.BookingID
		}
		if input.Amount != nil {
			invoice.Amount = *input.Amount
		}
		if input.ReportMonth != "" {
			invoice.ReportMonth = input.ReportMonth
		}
		if input.Status != "" {
			invoice.Status = models.InvoiceStatus(input.Status)
			if invoice.Status == models.InvoiceStatusPaid && invoice.PaidAt == nil {
				now := time.Now()
				invoice.PaidAt = &now
			}
		}

		if err := db.Save(&invoice).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update invoice"})
			return
		}

		notifier.NotifyVendor(invoice.VendorID, services.EventInvoiceUpdate, &invoice)

		c.JSON(200, invoice)
	}
}

func DeleteInvoice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&invoice).Error; err != nil {
			c.JSON(404, gin.H{"error": "Invoice not found"})
			return
		}

		if err := db.Delete(&invoice).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete invoice"})
			return
		}

		c.JSON(200, gin.H{"message": "Invoice deleted"})
	}
}

// UploadInvoiceDocument attaches a scanned document to an invoice. The
// file lands in S3 (or the local fallback) and its URL is recorded on the
// invoice.
func UploadInvoiceDocument(db *gorm.DB, notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoice models.Invoice
		if err := db.Where("id = ? AND vendor_id = ?", c.Param("id"), c.GetUint("vendorId")).
			First(&invoice).Error; err != nil {
			c.JSON(404, gin.H{"error": "Invoice not found"})
			return
		}

		file, err := c.FormFile("document")
		if err != nil {
			c.JSON(400, gin.H{"error": "Document file required"})
			return
		}

		url, err := services.UploadDocument(file, "invoices")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to store document"})
			return
		}

		invoice.DocumentURL = url
		if err := db.Save(&invoice).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update invoice"})
			return
		}

		notifier.NotifyVendor(invoice.VendorID, services.EventInvoiceUpdate, &invoice)

		c.JSON(200, invoice)
	}
}
