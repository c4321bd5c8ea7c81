package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleVendor UserRole = "vendor"
	RoleAdmin  UserRole = "admin"
)

// User is a dashboard account. Vendor accounts are linked to the Vendor
// record that owns their fleet; admin accounts have no vendor.
type User struct {
	gorm.Model
	Name         string   `json:"name" gorm:"column:name;not null"`
	Email        string   `json:"email" gorm:"column:email;unique;not null"`
	Password     string   `json:"-" gorm:"-:migration"` // Temporary field for password handling
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"`
	Role         UserRole `json:"role" gorm:"column:role;not null;default:'vendor'"`
	VendorID     *uint    `json:"vendorId" gorm:"column:vendor_id"`
	Vendor       *Vendor  `json:"vendor,omitempty"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
