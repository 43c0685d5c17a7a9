package utils

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// ProdigiItem is one print line in a fulfillment order.
type ProdigiItem struct {
	SKU      string `json:"sku"`
	Copies   int    `json:"copies"`
	AssetURL string `json:"assetUrl"`
}

// ProdigiOrder is the payload sent to the print-on-demand provider.
type ProdigiOrder struct {
	MerchantReference string        `json:"merchantReference"`
	RecipientEmail    string        `json:"recipientEmail"`
	Items             []ProdigiItem `json:"items"`
}

// SubmitFulfillmentOrder sends a paid order to the Prodigi print API.
// Failures are logged only: fulfillment submission is retried manually
// from the admin dashboard and must never fail the payment webhook.
func SubmitFulfillmentOrder(order ProdigiOrder) {
	payload, err := json.Marshal(order)
	if err != nil {
		log.Printf("Failed to marshal fulfillment order %s: %v", order.MerchantReference, err)
		return
	}

	req, err := http.NewRequest("POST", os.Getenv("PRODIGI_URL")+"/v4.0/Orders", bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("Failed to create fulfillment request for order %s: %v", order.MerchantReference, err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", os.Getenv("PRODIGI_API_KEY"))

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to submit fulfillment order %s: %v", order.MerchantReference, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Fulfillment submission for order %s returned status %d", order.MerchantReference, resp.StatusCode)
		return
	}

	log.Printf("Fulfillment order %s submitted", order.MerchantReference)
}
