package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/models"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=vendor admin"`
	VendorInfo struct {
		Phone         string `json:"phone"`
		Address       string `json:"address"`
		AccountNumber string `json:"accountNumber"`
		IFSC          string `json:"ifsc"`
		BankName      string `json:"bankName"`
		Branch        string `json:"branch"`
	} `json:"vendorInfo"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account. Vendor accounts also get a Vendor record
// so bookings, fleet entities and the open market have an owner to hang
// off.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if result := db.Where("email = ?", input.Email).First(&existing); result.Error == nil {
			c.JSON(400, gin.H{"error": "User already exists"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			Role:         models.UserRole(input.Role),
		}

		if user.Role == models.RoleVendor {
			vendor := models.Vendor{
				Name:          input.Name,
				Email:         input.Email,
				Phone:         input.VendorInfo.Phone,
				Address:       input.VendorInfo.Address,
				AccountNumber: input.VendorInfo.AccountNumber,
				IFSC:          input.VendorInfo.IFSC,
				BankName:      input.VendorInfo.BankName,
				Branch:        input.VendorInfo.Branch,
			}
			if result := db.Create(&vendor); result.Error != nil {
				c.JSON(500, gin.H{"error": "Failed to create vendor: " + result.Error.Error()})
				return
			}
			user.VendorID = &vendor.ID
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create user: " + result.Error.Error()})
			return
		}

		c.JSON(201, gin.H{"message": "User registered"})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Preload("Vendor").Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":     user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"role":   user.Role,
				"vendor": user.Vendor,
			},
		})
	}
}
