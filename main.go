package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pawtraits-dev/pawtraits-server/handlers/auth"
	"github.com/pawtraits-dev/pawtraits-server/handlers/orders"
	"github.com/pawtraits-dev/pawtraits-server/handlers/partners"
	"github.com/pawtraits-dev/pawtraits-server/handlers/payments"
	"github.com/pawtraits-dev/pawtraits-server/handlers/referrals"
	"github.com/pawtraits-dev/pawtraits-server/migrations"
	"github.com/pawtraits-dev/pawtraits-server/seed"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("STOREFRONT_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	migrations.Run(utils.DSN())
	utils.ConnectDatabase()

	if err := seed.SeedAdminUser(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Public routes
	r.POST("/signup", auth.Register)
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.AuthMiddleware(), auth.Logout)
	r.GET("/p/:code", referrals.TrackCodeAccess)
	r.GET("/c/:code", referrals.TrackCodeAccess)
	r.POST("/webhooks/stripe", payments.HandleStripeWebhook)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/orders", orders.CreateOrder)
		protected.GET("/orders", orders.GetUserOrders)
		protected.POST("/orders/pay", payments.CreatePaymentIntent)
		protected.GET("/referrals/mine", referrals.GetMyReferrals)
	}

	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
	{
		admin.GET("/partners", partners.ListPartners)
		admin.POST("/partners", partners.CreatePartner)
		admin.POST("/partners/:id/approve", partners.ApprovePartner)
		admin.POST("/pre-registration-codes", referrals.CreatePreRegistrationCodes)
		admin.GET("/commissions", referrals.ListCommissions)
		admin.POST("/commissions/:id/mark-paid", referrals.MarkCommissionPaid)
		admin.POST("/referrals/expire-stale", referrals.ExpireStaleReferrals)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
