package seed

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pawtraits-dev/pawtraits-server/models"
	"github.com/pawtraits-dev/pawtraits-server/utils"
)

// SeedAdminUser makes sure the dashboard admin account from the
// environment exists.
func SeedAdminUser() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	err := utils.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:       email,
		Password:    string(hashedPassword),
		DisplayName: "Pawtraits Admin",
		UserType:    "admin",
	}

	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully.")
	return nil
}
