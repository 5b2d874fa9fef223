package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"vastra/utils"
)

const apiBase = "https://api.razorpay.com/v1"

// Client talks to the Razorpay Orders API. With no credentials configured
// it degrades to a dev stub that fabricates order ids, so local checkout
// works without an account.
type Client struct {
	KeyID     string
	KeySecret string
	HTTP      *http.Client
}

func NewClient() *Client {
	return &Client{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder opens a payment intent for amountPaise minor units, tagged
// with the storage id of our Order as receipt.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*GatewayOrder, error) {
	if c.KeyID == "" || c.KeySecret == "" {
		return &GatewayOrder{
			ID:       "order_dev_" + utils.GetUUID(),
			Amount:   amountPaise,
			Currency: "INR",
			Receipt:  receipt,
			Status:   "created",
		}, nil
	}

	payload, err := json.Marshal(map[string]any{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("razorpay: create order: %s (%d)", apiErr.Error.Description, resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Signature computes the hex HMAC-SHA256 of "<orderID>|<paymentID>" under
// the key secret. This is what the gateway sends back after a completed
// payment.
func Signature(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether the supplied signature proves payment
// completion. Constant-time comparison.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Signature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
