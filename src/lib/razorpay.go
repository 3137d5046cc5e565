package lib

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"hms/src/config"
	"hms/src/types"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentGateway opens payment orders with the external processor and
// authenticates its callbacks.
type PaymentGateway interface {
	// CreateOrder opens a payment intent for amountMinor (paise).
	// Nothing is persisted on the caller's side by the gateway.
	CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (string, error)
	// VerifySignature reports whether signature is a valid HMAC for the
	// order/payment pair. A mismatch is an expected outcome, not an error.
	VerifySignature(orderId, paymentId, signature string) bool
}

type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

var gateway PaymentGateway

func GetPaymentGateway() PaymentGateway {
	if gateway != nil {
		return gateway
	}
	cfg := config.Load()
	rz := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	rz.SetTimeout(10)
	gateway = &RazorpayGateway{client: rz, keySecret: cfg.RazorpayKeySecret}
	return gateway
}

// NewPaymentGateway replaces the gateway instance, for tests.
func NewPaymentGateway(g PaymentGateway) PaymentGateway {
	gateway = g
	return gateway
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string, receipt string) (string, error) {
	data := map[string]any{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		log.Printf("[razorpay] Error creating order: %s\n", err.Error())
		return "", types.ErrGatewayUnavailable
	}
	orderId, ok := order["id"].(string)
	if !ok || orderId == "" {
		log.Printf("[razorpay] Order response missing id: %v\n", order)
		return "", types.ErrGatewayUnavailable
	}
	return orderId, nil
}

func (g *RazorpayGateway) VerifySignature(orderId, paymentId, signature string) bool {
	return VerifyPaymentSignature(g.keySecret, orderId, paymentId, signature)
}

// VerifyPaymentSignature recomputes HMAC-SHA256(secret, orderId|paymentId)
// and compares it to the client-supplied hex signature in constant time.
func VerifyPaymentSignature(secret, orderId, paymentId, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderId, paymentId)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
