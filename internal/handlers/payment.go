package handlers

import (
	"context"
	"math"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/projet-mariage/wedding-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/balance"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type PaymentHandler struct {
	cfg *config.Config
	log zerolog.Logger

	// Indirections over the Stripe bindings so tests can exercise the
	// validation paths without hitting the network.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	getBalance    func(params *stripe.BalanceParams) (*stripe.Balance, error)
}

func NewPaymentHandler(cfg *config.Config) *PaymentHandler {
	stripe.Key = cfg.StripeSecretKey
	return &PaymentHandler{
		cfg:           cfg,
		log:           zerolog.New(os.Stdout).With().Timestamp().Str("component", "payments").Logger(),
		createSession: session.New,
		getBalance:    balance.Get,
	}
}

type CheckoutSessionInput struct {
	Body struct {
		Amount   float64 `json:"amount" doc:"Amount in major currency units, e.g. euros"`
		Currency string  `json:"currency,omitempty" doc:"ISO currency code, defaults to eur"`
	}
}

type CheckoutSessionResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message" doc:"Checkout URL to redirect the payer to"`
	}
}

// CreateCheckoutSession creates a Stripe Checkout Session for a dynamic
// amount against the configured product.
func (h *PaymentHandler) CreateCheckoutSession(ctx context.Context, input *CheckoutSessionInput) (*CheckoutSessionResponse, error) {
	if input.Body.Amount <= 0 {
		return nil, huma.Error400BadRequest("amount must be greater than 0")
	}

	currency := input.Body.Currency
	if currency == "" {
		currency = "eur"
	}

	amountInCents := int64(math.Round(input.Body.Amount * 100))
	if amountInCents < 50 && currency == "eur" {
		return nil, huma.Error400BadRequest("the minimum amount is 0.50 EUR")
	}

	if h.cfg.StripeProductID == "" {
		h.log.Error().Msg("STRIPE_PRODUCT_ID is not set")
		return nil, huma.Error500InternalServerError("incomplete Stripe configuration")
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					Product:    stripe.String(h.cfg.StripeProductID),
					UnitAmount: stripe.Int64(amountInCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(h.cfg.FrontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(h.cfg.FrontendURL + "/payment/cancel"),
	}
	params.AddMetadata("created_at", time.Now().UTC().Format(time.RFC3339))

	sess, err := h.createSession(params)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create checkout session")
		return nil, huma.Error500InternalServerError("failed to create the payment session")
	}
	if sess.URL == "" {
		return nil, huma.Error500InternalServerError("unable to create a checkout URL")
	}

	res := &CheckoutSessionResponse{}
	res.Body.Success = true
	res.Body.Message = sess.URL
	return res, nil
}

// CreatePaymentIntent is kept for route compatibility with older frontends.
func (h *PaymentHandler) CreatePaymentIntent(ctx context.Context, _ *struct{}) (*struct{}, error) {
	return nil, huma.Error501NotImplemented("not implemented")
}

type BalanceAmount struct {
	Amount      float64          `json:"amount"`
	Currency    string           `json:"currency"`
	SourceTypes map[string]int64 `json:"sourceTypes"`
}

type BalanceResponse struct {
	Body struct {
		Success bool `json:"success"`
		Data    struct {
			Available      []BalanceAmount `json:"available"`
			Pending        []BalanceAmount `json:"pending"`
			TotalAvailable float64         `json:"totalAvailable"`
			TotalPending   float64         `json:"totalPending"`
		} `json:"data"`
	}
}

// GetBalance returns the Stripe account balance in major currency units.
func (h *PaymentHandler) GetBalance(ctx context.Context, _ *struct{}) (*BalanceResponse, error) {
	bal, err := h.getBalance(&stripe.BalanceParams{})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to retrieve balance")
		return nil, huma.Error500InternalServerError("failed to retrieve the balance")
	}

	res := &BalanceResponse{}
	res.Body.Success = true
	res.Body.Data.Available, res.Body.Data.TotalAvailable = formatAmounts(bal.Available)
	res.Body.Data.Pending, res.Body.Data.TotalPending = formatAmounts(bal.Pending)
	return res, nil
}

func formatAmounts(amounts []*stripe.BalanceAmount) ([]BalanceAmount, float64) {
	formatted := make([]BalanceAmount, 0, len(amounts))
	total := 0.0
	for _, a := range amounts {
		major := float64(a.Amount) / 100
		total += major
		sourceTypes := make(map[string]int64, len(a.SourceTypes))
		for k, v := range a.SourceTypes {
			sourceTypes[string(k)] = v
		}
		formatted = append(formatted, BalanceAmount{
			Amount:      major,
			Currency:    strings.ToUpper(string(a.Currency)),
			SourceTypes: sourceTypes,
		})
	}
	return formatted, total
}
