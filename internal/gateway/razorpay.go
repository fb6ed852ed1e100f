package gateway

import (
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/noah-isme/edupay-api/pkg/config"
)

// Order is the client-facing descriptor of a freshly created gateway order.
// Amount is in paise, the gateway's smallest currency unit.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Client wraps the Razorpay order API and callback verification.
type Client struct {
	api    *razorpay.Client
	keyID  string
	secret string
}

// NewClient constructs a gateway client from the configured key pair.
func NewClient(cfg config.RazorpayConfig) *Client {
	return &Client{
		api:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:  cfg.KeyID,
		secret: cfg.KeySecret,
	}
}

// CreateOrder registers an order with the gateway for the given amount in
// rupees and returns its descriptor.
func (c *Client) CreateOrder(amount float64, receipt string, notes map[string]interface{}) (*Order, error) {
	paise := int64(math.Round(amount * 100))
	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("gateway order response missing id")
	}

	return &Order{OrderID: id, Amount: paise, Currency: "INR", KeyID: c.keyID}, nil
}

// Verify checks a payment callback signature against the client secret.
func (c *Client) Verify(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.secret)
}
