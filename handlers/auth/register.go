package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/referral"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

// Register creates a customer account. An inbound referral code is
// resolved before the account row is written; an unrecognized code never
// blocks the signup.
func Register(c *gin.Context) {
	var input struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=8"`
		DisplayName  string `json:"display_name"`
		ReferralCode string `json:"referralCode"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email and password."})
		return
	}

	var existing models.User
	err := utils.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check existing user %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete signup, please try again."})
		return
	}

	store := referral.NewGormStore(utils.DB)

	attribution, err := referral.ResolveAttribution(store, input.ReferralCode)
	if err != nil {
		log.Printf("Attribution lookup failed for code %q: %v", input.ReferralCode, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete signup, please try again."})
		return
	}
	if input.ReferralCode != "" && attribution == nil {
		// Not an error: signup proceeds without a referral.
		log.Printf("Referral code %q did not resolve to a referrer", input.ReferralCode)
	}

	personalCode, err := referral.GenerateCode(store, referral.DefaultCodePrefix, referral.DefaultSuffixLength)
	if err != nil {
		log.Printf("Personal referral code generation failed for %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not complete signup, please try again."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	user := models.User{
		Email:                input.Email,
		Password:             string(hashedPassword),
		DisplayName:          input.DisplayName,
		UserType:             "customer",
		PersonalReferralCode: &personalCode,
	}
	if attribution != nil {
		user.ReferrerID = &attribution.ReferrerID
		referralType := attribution.ReferralType
		user.ReferralType = &referralType
		codeUsed := input.ReferralCode
		user.ReferralCodeUsed = &codeUsed
	}

	if err := utils.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue creating your account. Please contact support."})
		return
	}

	now := time.Now()

	// Referral bookkeeping below is best effort; the account exists.
	if err := store.CreateReferral(&models.Referral{
		Code:         personalCode,
		ReferrerID:   user.ID,
		ReferralType: models.ReferralTypeCustomer,
		Status:       models.ReferralStatusInvited,
		ExpiresAt:    now.Add(referral.ExpiryWindow),
	}); err != nil {
		log.Printf("Failed to create referral record for code %s: %v", personalCode, err)
	}

	if attribution != nil {
		if attribution.PreRegistrationID != nil {
			if err := utils.DB.Model(&models.PreRegistrationCode{}).
				Where("id = ?", *attribution.PreRegistrationID).
				Update("claimed", true).Error; err != nil {
				log.Printf("Failed to mark pre-registration code claimed: %v", err)
			}
		}
		if _, err := referral.TrackAccepted(store, input.ReferralCode, user.ID, now); err != nil &&
			!errors.Is(err, referral.ErrReferralNotFound) && !errors.Is(err, referral.ErrReferralExpired) {
			log.Printf("Failed to record accepted referral for code %s: %v", input.ReferralCode, err)
		}
	}

	token, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully.",
		"token":   token,
		"user": gin.H{
			"id":                     user.ID,
			"email":                  user.Email,
			"display_name":           user.DisplayName,
			"personal_referral_code": personalCode,
			"referral_type":          user.ReferralType,
		},
	})
}
