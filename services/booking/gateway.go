package booking

import (
	"context"
	"encoding/json"
	"math"

	"mentora/models"

	"github.com/stripe/stripe-go/v76"
	checkoutSession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Gateway event type for a completed checkout.
const eventCheckoutCompleted = "checkout.session.completed"

// PaymentGateway abstracts the external payment provider so the checkout
// and fulfillment flows can be tested against a fake.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req models.GatewaySessionRequest) (*models.CheckoutResult, error)
	VerifyEvent(payload []byte, signature string) (*models.PaymentEvent, error)
	GetSession(ctx context.Context, sessionID string) (*models.CheckoutReceipt, error)
}

// StripeGateway implements PaymentGateway on Stripe Checkout. The API key
// is the package-global stripe.Key set at startup.
type StripeGateway struct {
	WebhookSecret string
}

func NewStripeGateway(webhookSecret string) *StripeGateway {
	return &StripeGateway{WebhookSecret: webhookSecret}
}

// CreateSession opens a Stripe Checkout session for the given amount,
// attaching the booking intent as session metadata.
func (g *StripeGateway) CreateSession(ctx context.Context, req models.GatewaySessionRequest) (*models.CheckoutResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(req.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := checkoutSession.New(params)
	if err != nil {
		return nil, models.NewUnavailableError("failed to create checkout session: %v", err)
	}
	return &models.CheckoutResult{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

// VerifyEvent checks the webhook signature and decodes the event. A bad
// signature is a security error and must cause no side effects upstream.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*models.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.WebhookSecret)
	if err != nil {
		return nil, models.NewSecurityError("webhook signature verification failed: %v", err)
	}

	ev := &models.PaymentEvent{Type: string(event.Type)}
	if ev.Type == eventCheckoutCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, models.NewValidationError("malformed checkout session payload: %v", err)
		}
		ev.SessionID = sess.ID
		ev.Metadata = sess.Metadata
	}
	return ev, nil
}

// GetSession retrieves a checkout session for receipt display.
func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*models.CheckoutReceipt, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := checkoutSession.Get(sessionID, params)
	if err != nil {
		return nil, models.NewUnavailableError("failed to retrieve checkout session %s: %v", sessionID, err)
	}
	return &models.CheckoutReceipt{
		SessionID:     sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   float64(sess.AmountTotal) / 100,
		Currency:      string(sess.Currency),
	}, nil
}
