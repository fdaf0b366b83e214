package models

// CheckoutRequest is the client's intent to book a slot. The price is what
// the client saw while browsing; the slot's stored price is what gets
// charged if the two disagree.
type CheckoutRequest struct {
	ProviderID string  `json:"providerId" binding:"required"`
	ClientID   string  `json:"clientId" binding:"required"`
	Mode       string  `json:"mode" binding:"required"`
	Date       string  `json:"date" binding:"required"` // "2006-01-02"
	StartTime  string  `json:"startTime" binding:"required"`
	Price      float64 `json:"price"`
}

// CheckoutResult carries the gateway session handle back to the client.
type CheckoutResult struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

// CheckoutReceipt is a read-only view of a gateway session, for receipts.
type CheckoutReceipt struct {
	SessionID     string  `json:"sessionId"`
	PaymentStatus string  `json:"paymentStatus"`
	AmountTotal   float64 `json:"amountTotal"`
	Currency      string  `json:"currency"`
}

// GatewaySessionRequest is what the payment gateway needs to open a
// checkout session. Metadata round-trips opaquely through the gateway and
// comes back on the confirmation event.
type GatewaySessionRequest struct {
	Amount      float64
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// PaymentEvent is a verified event delivered by the payment gateway.
// SessionID and Metadata are populated for checkout completions.
type PaymentEvent struct {
	Type      string
	SessionID string
	Metadata  map[string]string
}

// BookingIntent is the checkout metadata decoded back into typed fields.
type BookingIntent struct {
	SlotID     string
	ProviderID string
	ClientID   string
	Mode       string
	Date       string
	StartTime  string
	Amount     float64
}
