package utils

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

func sendEmail(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return
	}

	log.Printf("Email sent to %s: %s", to, subject)
}

// SendOrderConfirmationEmail notifies a customer that their portrait order
// was paid and is headed to the print queue.
func SendOrderConfirmationEmail(email, orderPublicID string) {
	body := fmt.Sprintf("Thanks for your order! Your pet portrait order %s is paid and on its way to our studio.", orderPublicID)
	sendEmail(email, "Your Pawtraits order is confirmed", body)
}

// SendCommissionEmail notifies a referrer that a commission was recorded
// for an order placed by someone they referred.
func SendCommissionEmail(email string, amountPence int64) {
	body := fmt.Sprintf("Good news! You've earned a referral reward of £%.2f. It will appear in your next payout.", float64(amountPence)/100)
	sendEmail(email, "You've earned a referral reward", body)
}
