package models

import "gorm.io/gorm"

// Vendor is a fleet operator. Whitelisted vendors get preferential
// treatment in the open-market visibility rule.
type Vendor struct {
	gorm.Model
	Name          string `json:"name" gorm:"column:name;not null"`
	Email         string `json:"email" gorm:"column:email;unique;not null"`
	Phone         string `json:"phone" gorm:"column:phone"`
	Address       string `json:"address" gorm:"column:address"`
	Whitelisted   bool   `json:"whitelisted" gorm:"column:whitelisted;not null;default:false"`
	AccountNumber string `json:"accountNumber" gorm:"column:account_number"`
	IFSC          string `json:"ifsc" gorm:"column:ifsc"`
	BankName      string `json:"bankName" gorm:"column:bank_name"`
	Branch        string `json:"branch" gorm:"column:branch"`
}
