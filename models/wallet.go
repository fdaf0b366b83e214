package models

import "time"

// Wallet owner types.
const (
	OwnerClient    = "client"
	OwnerTherapist = "therapist"
	OwnerAdmin     = "admin"
)

// Transaction types and statuses.
const (
	TxnCredit = "credit"
	TxnDebit  = "debit"

	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
)

// Transaction purposes. Every ledger movement is tagged with exactly one of
// these so the ledger can be audited without string-keyed metadata lookups.
const (
	PurposePlatformFee   = "platform_fee_credit"
	PurposeProviderShare = "provider_session_credit"
)

// Wallet holds a non-negative balance for one owner. Created lazily on the
// first credit; unique per (ownerId, ownerType).
type Wallet struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
	OwnerType string    `bson:"ownerType" json:"ownerType"`
	Balance   float64   `bson:"balance" json:"balance"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TransactionMetadata links a ledger movement back to the checkout session
// and booking that produced it.
type TransactionMetadata struct {
	Purpose       string `bson:"purpose" json:"purpose"`
	SessionID     string `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	SlotID        string `bson:"slotId,omitempty" json:"slotId,omitempty"`
	ProviderID    string `bson:"providerId,omitempty" json:"providerId,omitempty"`
	ClientID      string `bson:"clientId,omitempty" json:"clientId,omitempty"`
	AppointmentID string `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
}

// Transaction is one immutable ledger movement against a wallet.
type Transaction struct {
	ID          string              `bson:"id" json:"id"`
	WalletID    string              `bson:"walletId" json:"walletId"`
	Type        string              `bson:"type" json:"type"`
	Amount      float64             `bson:"amount" json:"amount"`
	Description string              `bson:"description" json:"description"`
	Status      string              `bson:"status" json:"status"`
	Metadata    TransactionMetadata `bson:"metadata" json:"metadata"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

// WalletSummary aggregates completed transactions for one wallet.
type WalletSummary struct {
	TotalCredit        float64 `json:"totalCredit"`
	TotalDebit         float64 `json:"totalDebit"`
	CurrentMonthCredit float64 `json:"currentMonthCredit"`
	Balance            float64 `json:"balance"`
}

// FulfillmentClaim records that a checkout session's confirmation has been
// picked up for processing. The unique session id is the idempotency key
// that keeps duplicate webhook deliveries from booking twice.
type FulfillmentClaim struct {
	SessionID   string     `bson:"sessionId" json:"sessionId"`
	Status      string     `bson:"status" json:"status"` // "processing" or "completed"
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// FulfillmentClaim statuses.
const (
	ClaimProcessing = "processing"
	ClaimCompleted  = "completed"
)
