package models

import "gorm.io/gorm"

type Vehicle struct {
	gorm.Model
	Type         string  `json:"type" gorm:"column:type"`
	Plate        string  `json:"plate" gorm:"column:plate;unique;not null"`
	VehicleModel string  `json:"model" gorm:"column:vehicle_model"`
	Insurance    string  `json:"insurance" gorm:"column:insurance"`
	Condition    string  `json:"condition" gorm:"column:condition"`
	Available    bool    `json:"available" gorm:"column:available;not null;default:true"`
	VendorID     uint    `json:"vendorId" gorm:"column:vendor_id;not null"`
	Vendor       *Vendor `json:"vendor,omitempty"`
}
