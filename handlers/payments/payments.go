package payments

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
	"gorm.io/gorm"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/referral"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

// CreatePaymentIntent starts Stripe checkout for one of the calling
// customer's pending orders.
func CreatePaymentIntent(c *gin.Context) {
	var req struct {
		OrderPublicID string `json:"order_public_id" binding:"required"`
	}

	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	var order models.Order
	if err := utils.DB.Where("public_id = ? AND user_id = ?", req.OrderPublicID, user.ID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is not awaiting payment"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.SubtotalPence),
		Currency: stripe.String(order.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		ReceiptEmail: stripe.String(order.CustomerEmail),
	}
	params.Metadata = map[string]string{
		"order_public_id": order.PublicID,
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := utils.DB.Model(&order).
		Update("stripe_payment_intent_id", pi.ID).Error; err != nil {
		log.Printf("Failed to record payment intent %s on order %s: %v", pi.ID, order.PublicID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
	})
}

// HandleStripeWebhook receives payment events. The commission step runs
// inside this handler; Stripe may deliver the same event more than once,
// so every step below is idempotent.
func HandleStripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Writer.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	endpointSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(payload, c.Request.Header.Get("Stripe-Signature"), endpointSecret)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Type == "payment_intent.succeeded" {
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			log.Printf("Error parsing webhook JSON: %v", err)
			c.Writer.WriteHeader(http.StatusBadRequest)
			return
		}

		handlePaymentSuccess(paymentIntent)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func handlePaymentSuccess(paymentIntent stripe.PaymentIntent) {
	publicID := paymentIntent.Metadata["order_public_id"]
	if publicID == "" {
		log.Printf("PaymentIntent %s does not have order_public_id in metadata", paymentIntent.ID)
		return
	}

	var order models.Order
	err := utils.DB.Preload("Items").Where("public_id = ?", publicID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("PaymentIntent %s references unknown order %s", paymentIntent.ID, publicID)
		return
	}
	if err != nil {
		log.Printf("Failed to load order %s: %v", publicID, err)
		return
	}

	firstDelivery := order.Status == models.OrderStatusPending
	if firstDelivery {
		if err := utils.DB.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
			log.Printf("Failed to mark order %s paid: %v", publicID, err)
			return
		}
		order.Status = models.OrderStatusPaid
	}

	// Commission bookkeeping is best effort and idempotent; a failure
	// here never holds up fulfillment.
	store := referral.NewGormStore(utils.DB)
	commission, err := referral.RecordCommission(store, &order)
	if err != nil {
		log.Printf("Commission computation failed for order %s: %v", publicID, err)
	} else if commission != nil {
		if err := referral.TrackApplied(store, order.UserID, time.Now()); err != nil {
			log.Printf("Failed to record applied referral for user %d: %v", order.UserID, err)
		}
		if firstDelivery {
			notifyCommissionRecipient(store, commission)
		}
	}

	if firstDelivery {
		utils.SendOrderConfirmationEmail(order.CustomerEmail, order.PublicID)
		submitForFulfillment(&order)
	}
}

func notifyCommissionRecipient(store referral.Store, commission *models.Commission) {
	switch commission.RecipientType {
	case models.ReferralTypePartner:
		partner, err := store.PartnerByID(commission.RecipientID)
		if err != nil || partner == nil {
			log.Printf("Could not load partner %d for commission notification", commission.RecipientID)
			return
		}
		utils.SendCommissionEmail(partner.ContactEmail, commission.AmountPence)
	case models.ReferralTypeCustomer:
		user, err := store.UserByID(commission.RecipientID)
		if err != nil || user == nil {
			log.Printf("Could not load user %d for commission notification", commission.RecipientID)
			return
		}
		utils.SendCommissionEmail(user.Email, commission.AmountPence)
	}
}

func submitForFulfillment(order *models.Order) {
	items := make([]utils.ProdigiItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.ProdigiItem{
			SKU:      item.StyleName,
			Copies:   item.Quantity,
			AssetURL: item.ArtworkURL,
		})
	}

	utils.SubmitFulfillmentOrder(utils.ProdigiOrder{
		MerchantReference: order.PublicID,
		RecipientEmail:    order.CustomerEmail,
		Items:             items,
	})

	if err := utils.DB.Model(order).Update("status", models.OrderStatusSubmitted).Error; err != nil {
		log.Printf("Failed to mark order %s submitted: %v", order.PublicID, err)
	}
}
