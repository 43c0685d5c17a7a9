package referrals

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/referral"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

// TrackCodeAccess serves the public /p/:code and /c/:code landing lookups:
// it records the view (atomic scan-count increment plus the accessed
// transition) and returns referrer display metadata for the landing page.
func TrackCodeAccess(c *gin.Context) {
	code := c.Param("code")
	store := referral.NewGormStore(utils.DB)

	rec, err := referral.TrackAccess(store, code, time.Now())
	if errors.Is(err, referral.ErrReferralNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral code not found"})
		return
	}
	if errors.Is(err, referral.ErrReferralExpired) {
		c.JSON(http.StatusGone, gin.H{"error": "This referral link has expired"})
		return
	}
	if err != nil {
		log.Printf("Failed to track access for code %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up referral code"})
		return
	}

	referrer, err := referrerMetadata(store, rec)
	if err != nil {
		log.Printf("Failed to load referrer for code %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up referral code"})
		return
	}
	if referrer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     rec.Code,
		"status":   rec.Status,
		"referrer": referrer,
	})
}

func referrerMetadata(store referral.Store, rec *models.Referral) (gin.H, error) {
	switch rec.ReferralType {
	case models.ReferralTypePartner:
		partner, err := store.PartnerByID(rec.ReferrerID)
		if err != nil || partner == nil {
			return nil, err
		}
		return gin.H{
			"type":          models.ReferralTypePartner,
			"business_name": partner.BusinessName,
			"logo_url":      partner.LogoURL,
		}, nil
	case models.ReferralTypeCustomer:
		user, err := store.UserByID(rec.ReferrerID)
		if err != nil || user == nil {
			return nil, err
		}
		return gin.H{
			"type": models.ReferralTypeCustomer,
			"name": user.DisplayName,
		}, nil
	}
	return nil, nil
}

// GetMyReferrals returns the calling customer's referral records and
// earned credits.
func GetMyReferrals(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	var referrals []models.Referral
	if err := utils.DB.Where("referrer_id = ? AND referral_type = ?", user.ID, models.ReferralTypeCustomer).
		Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referrals"})
		return
	}

	var credits []models.Commission
	if err := utils.DB.Where("recipient_id = ? AND recipient_type = ?", user.ID, models.ReferralTypeCustomer).
		Find(&credits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch credits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals, "credits": credits})
}

// ListCommissions returns all commission records for the admin payout view.
func ListCommissions(c *gin.Context) {
	var commissions []models.Commission
	query := utils.DB.Order("created_at DESC")
	if c.Query("unpaid") == "true" {
		query = query.Where("paid = ?", false)
	}
	if err := query.Find(&commissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commissions": commissions})
}

// MarkCommissionPaid flags a commission as paid out.
func MarkCommissionPaid(c *gin.Context) {
	commissionID := c.Param("id")
	var commission models.Commission

	if err := utils.DB.First(&commission, commissionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commission not found"})
		return
	}

	if commission.Paid {
		c.JSON(http.StatusOK, gin.H{"message": "Commission already marked as paid"})
		return
	}

	now := time.Now()
	commission.Paid = true
	commission.PaidAt = &now
	if err := utils.DB.Save(&commission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark commission as paid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commission marked as paid"})
}

// ExpireStaleReferrals sweeps every non-terminal referral past its expiry
// window into the expired state.
func ExpireStaleReferrals(c *gin.Context) {
	result := utils.DB.Model(&models.Referral{}).
		Where("status NOT IN ? AND expires_at < ?",
			[]string{models.ReferralStatusApplied, models.ReferralStatusExpired}, time.Now()).
		Update("status", models.ReferralStatusExpired)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to expire referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": result.RowsAffected})
}

// CreatePreRegistrationCodes issues a batch of pre-registration codes,
// optionally already assigned to a partner.
func CreatePreRegistrationCodes(c *gin.Context) {
	var input struct {
		Count     int    `json:"count" binding:"required,min=1,max=100"`
		Prefix    string `json:"prefix"`
		PartnerID *uint  `json:"partner_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	store := referral.NewGormStore(utils.DB)

	var partner *models.Partner
	if input.PartnerID != nil {
		var err error
		partner, err = store.PartnerByID(*input.PartnerID)
		if err != nil || partner == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
			return
		}
	}

	now := time.Now()
	codes := make([]string, 0, input.Count)
	for i := 0; i < input.Count; i++ {
		code, err := referral.GenerateCode(store, input.Prefix, referral.DefaultSuffixLength)
		if err != nil {
			log.Printf("Pre-registration code generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate codes"})
			return
		}

		preReg := models.PreRegistrationCode{Code: code, PartnerID: input.PartnerID}
		if err := utils.DB.Create(&preReg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save codes"})
			return
		}

		if partner != nil {
			if err := store.CreateReferral(&models.Referral{
				Code:         code,
				ReferrerID:   partner.ID,
				ReferralType: models.ReferralTypePartner,
				Status:       models.ReferralStatusInvited,
				ExpiresAt:    now.Add(referral.ExpiryWindow),
			}); err != nil {
				log.Printf("Failed to create referral record for code %s: %v", code, err)
			}
		}

		codes = append(codes, code)
	}

	c.JSON(http.StatusCreated, gin.H{"codes": codes})
}
