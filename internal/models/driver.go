package models

import "gorm.io/gorm"

type Driver struct {
	gorm.Model
	Name          string  `json:"name" gorm:"column:name;not null"`
	LicenseNumber string  `json:"licenseNumber" gorm:"column:license_number;unique;not null"`
	Aadhar        string  `json:"aadhar" gorm:"column:aadhar"`
	PAN           string  `json:"pan" gorm:"column:pan"`
	Phone         string  `json:"phone" gorm:"column:phone"`
	Address       string  `json:"address" gorm:"column:address"`
	AccountNumber string  `json:"accountNumber" gorm:"column:account_number"`
	IFSC          string  `json:"ifsc" gorm:"column:ifsc"`
	BankName      string  `json:"bankName" gorm:"column:bank_name"`
	Branch        string  `json:"branch" gorm:"column:branch"`
	VendorID      uint    `json:"vendorId" gorm:"column:vendor_id;not null"`
	Vendor        *Vendor `json:"vendor,omitempty"`
}
