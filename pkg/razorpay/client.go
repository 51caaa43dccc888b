package razorpay

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Order is the subset of a Razorpay order the service keeps
type Order struct {
	ID       string
	Amount   int64 // smallest currency unit
	Currency string
	Receipt  string
	Status   string
}

// OrderCreator is the SDK's orders resource
type OrderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client wraps the Razorpay SDK for donation checkout
type Client struct {
	keyID     string
	keySecret string
	orders    OrderCreator
}

func NewClient(keyID, keySecret string) *Client {
	rz := sdk.NewClient(keyID, keySecret)
	return &Client{keyID: keyID, keySecret: keySecret, orders: rz.Order}
}

// WithOrders swaps the orders resource
func (c *Client) WithOrders(orders OrderCreator) *Client {
	c.orders = orders
	return c
}

// KeyID is the public key handed to the checkout widget
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder opens an order for amount units of the smallest currency unit.
// The SDK call is not cancellable, so ctx is only checked up front.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := c.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	return orderFromBody(body)
}

func orderFromBody(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: response has no order id")
	}
	amount, err := toInt64(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: amount: %w", err)
	}

	order := &Order{ID: id, Amount: amount}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	return order, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// VerifySignature checks the checkout callback signature for orderID|paymentID
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, c.keySecret)
}

// ToSubunits converts a major-unit amount to paise, rounding to the nearest unit
func ToSubunits(amount float64) int64 {
	if amount < 0 {
		return -int64(-amount*100 + 0.5)
	}
	return int64(amount*100 + 0.5)
}
