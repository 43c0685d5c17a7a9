package partners

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/referral"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

// CreatePartner registers a referring business. Its referral code is
// issued from a prefix derived from the business name.
func CreatePartner(c *gin.Context) {
	var input struct {
		BusinessName           string           `json:"business_name" binding:"required"`
		ContactEmail           string           `json:"contact_email" binding:"required,email"`
		LogoURL                string           `json:"logo_url"`
		InitialCommissionRate  *decimal.Decimal `json:"initial_commission_rate"`
		LifetimeCommissionRate *decimal.Decimal `json:"lifetime_commission_rate"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	store := referral.NewGormStore(utils.DB)

	code, err := referral.GenerateCode(store, referral.CodePrefix(input.BusinessName), referral.DefaultSuffixLength)
	if err != nil {
		log.Printf("Referral code generation failed for partner %s: %v", input.BusinessName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create partner"})
		return
	}

	partner := models.Partner{
		BusinessName:           input.BusinessName,
		ContactEmail:           input.ContactEmail,
		LogoURL:                input.LogoURL,
		ReferralCode:           code,
		InitialCommissionRate:  input.InitialCommissionRate,
		LifetimeCommissionRate: input.LifetimeCommissionRate,
		Active:                 true,
	}

	if err := utils.DB.Create(&partner).Error; err != nil {
		log.Printf("Failed to create partner %s: %v", input.BusinessName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create partner"})
		return
	}

	if err := store.CreateReferral(&models.Referral{
		Code:         code,
		ReferrerID:   partner.ID,
		ReferralType: models.ReferralTypePartner,
		Status:       models.ReferralStatusInvited,
		ExpiresAt:    time.Now().Add(referral.ExpiryWindow),
	}); err != nil {
		log.Printf("Failed to create referral record for partner code %s: %v", code, err)
	}

	c.JSON(http.StatusCreated, gin.H{"partner": partner})
}

// ApprovePartner activates a pending partner so its code starts
// attributing signups.
func ApprovePartner(c *gin.Context) {
	partnerID := c.Param("id")
	var partner models.Partner

	if err := utils.DB.First(&partner, partnerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
		return
	}

	partner.Approved = true
	if err := utils.DB.Save(&partner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve partner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Partner approved", "partner": partner})
}

func ListPartners(c *gin.Context) {
	var partners []models.Partner
	if err := utils.DB.Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch partners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}
