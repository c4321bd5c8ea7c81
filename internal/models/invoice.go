package models

import (
	"time"

	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
)

type Invoice struct {
	gorm.Model
	BookingID   *uint         `json:"bookingId" gorm:"column:booking_id"`
	Booking     *Booking      `json:"booking,omitempty"`
	VendorID    uint          `json:"vendorId" gorm:"column:vendor_id;not null"`
	Vendor      *Vendor       `json:"vendor,omitempty"`
	Amount      float64       `json:"amount" gorm:"column:amount"`
	Status      InvoiceStatus `json:"status" gorm:"column:status;not null;default:'Pending'"`
	SubmittedAt *time.Time    `json:"submittedAt" gorm:"column:submitted_at"`
	PaidAt      *time.Time    `json:"paidAt" gorm:"column:paid_at"`
	ReportMonth string        `json:"reportMonth" gorm:"column:report_month"` // e.g. '2025-08'
	DocumentURL string        `json:"documentUrl" gorm:"column:document_url"`
}
