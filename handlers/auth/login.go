package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email and password."})
		return
	}

	var user models.User
	if err := utils.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	tokenString, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   tokenString,
		"user": gin.H{
			"id":                     user.ID,
			"email":                  user.Email,
			"display_name":           user.DisplayName,
			"personal_referral_code": user.PersonalReferralCode,
		},
	})
}

// Logout handles user sign-out
func Logout(c *gin.Context) {
	// JWT tokens are stateless; without a blacklist there is nothing to
	// invalidate server-side.
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}
