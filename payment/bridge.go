// Package payment creates payment intents with the Stripe API.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/256dpi/xo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var hundred = decimal.NewFromInt(100)

// Amount converts a price in major units to the amount in minor units. The
// fractional remainder is truncated. Prices that do not yield at least one
// minor unit are rejected with a safe error.
func Amount(price decimal.Decimal) (int64, error) {
	// check sign
	if !price.IsPositive() {
		return 0, xo.SF("price must be positive")
	}

	// convert
	amount := price.Mul(hundred).Truncate(0)
	if !amount.IsPositive() {
		return 0, xo.SF("price is below the smallest unit")
	}

	return amount.IntPart(), nil
}

// UpstreamError is returned if the payment processor could not be reached or
// rejected the request.
type UpstreamError struct {
	// The processor response status, if any.
	Status int

	// The processor message, if any.
	Message string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("payment processor: %s", e.Message)
	}
	return fmt.Sprintf("payment processor (%d): %s", e.Status, e.Message)
}

// Config configures a bridge.
type Config struct {
	// The secret API key.
	Secret string

	// The API base URL.
	//
	// Default: "https://api.stripe.com".
	URL string

	// The currency of all intents.
	//
	// Default: "usd".
	Currency string

	// The timeout of processor requests. Zero means no timeout.
	Timeout time.Duration
}

// Bridge creates payment intents.
type Bridge struct {
	config  Config
	intents paymentintent.Client
}

// NewBridge creates and returns a new bridge.
func NewBridge(config Config) *Bridge {
	// apply defaults
	err := mergo.Merge(&config, Config{
		URL:      "https://api.stripe.com",
		Currency: "usd",
	})
	if err != nil {
		panic(err)
	}

	// normalize
	config.URL = strings.TrimRight(config.URL, "/")
	config.Currency = strings.ToLower(config.Currency)

	// prepare backend
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(config.URL),
		HTTPClient:        &http.Client{Timeout: config.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})

	return &Bridge{
		config: config,
		intents: paymentintent.Client{
			B:   backend,
			Key: config.Secret,
		},
	}
}

// Enabled returns whether a secret is configured.
func (b *Bridge) Enabled() bool {
	return b.config.Secret != ""
}

// CreateIntent creates a card payment intent for the price and returns the
// client secret of the intent.
func (b *Bridge) CreateIntent(ctx context.Context, price decimal.Decimal) (string, error) {
	// get amount
	amount, err := Amount(price)
	if err != nil {
		return "", err
	}

	// check secret
	if !b.Enabled() {
		return "", &UpstreamError{Message: "missing secret"}
	}

	// prepare params
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(b.config.Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	// create intent
	intent, err := b.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return "", &UpstreamError{Status: stripeErr.HTTPStatusCode, Message: stripeErr.Msg}
		}
		return "", &UpstreamError{Message: err.Error()}
	}

	// check secret
	if intent.ClientSecret == "" {
		var status int
		if intent.LastResponse != nil {
			status = intent.LastResponse.StatusCode
		}
		return "", &UpstreamError{Status: status, Message: "missing client secret"}
	}

	return intent.ClientSecret, nil
}
