package orders

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

type orderItemInput struct {
	PetName        string `json:"pet_name" binding:"required"`
	StyleName      string `json:"style_name" binding:"required"`
	ArtworkURL     string `json:"artwork_url"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	UnitPricePence int64  `json:"unit_price_pence" binding:"required,min=1"`
}

// CreateOrder records a pending portrait order for the calling customer.
// Payment happens separately via the payments endpoints.
func CreateOrder(c *gin.Context) {
	var input struct {
		Items []orderItemInput `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	var subtotal int64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		subtotal += item.UnitPricePence * int64(item.Quantity)
		items = append(items, models.OrderItem{
			PetName:        item.PetName,
			StyleName:      item.StyleName,
			ArtworkURL:     item.ArtworkURL,
			Quantity:       item.Quantity,
			UnitPricePence: item.UnitPricePence,
		})
	}

	order := models.Order{
		PublicID:      uuid.NewString(),
		UserID:        user.ID,
		CustomerEmail: user.Email,
		SubtotalPence: subtotal,
		Currency:      "gbp",
		Status:        models.OrderStatusPending,
		Items:         items,
	}

	if err := utils.DB.Create(&order).Error; err != nil {
		log.Printf("Failed to create order for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetUserOrders lists the calling customer's orders with their items.
func GetUserOrders(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	var orders []models.Order
	if err := utils.DB.Preload("Items").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
