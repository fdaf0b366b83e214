package booking

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"mentora/config"
	appointmentRepo "mentora/database/repository/appointment"
	fulfillmentRepo "mentora/database/repository/fulfillment"
	walletRepo "mentora/database/repository/wallet"
	"mentora/models"
	"mentora/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FulfillmentService converts a confirmed payment into a booked appointment
// and a balanced pair of ledger credits, exactly once per checkout session.
type FulfillmentService interface {
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error
}

// DefaultFulfillmentService implements FulfillmentService. The webhook is
// delivered at least once, so every step after the claim is written to be
// individually idempotent: a redelivery or a resumed crash re-runs only the
// steps that have not happened yet.
type DefaultFulfillmentService struct {
	Gateway         PaymentGateway
	WalletRepo      walletRepo.WalletRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	ClaimRepo       fulfillmentRepo.FulfillmentRepository
	Cache           *redis.Client
}

// SplitAmount divides a session payment between platform and provider.
// The fee is the configured rate rounded half-up to two decimals; the
// provider share is the remainder, so the two always sum to the amount.
func SplitAmount(amount float64) (fee, providerShare float64) {
	fee = math.Round(amount*utils.PlatformFeeRate()*100) / 100
	return fee, amount - fee
}

// HandlePaymentEvent runs the fulfillment pipeline:
// verify -> filter -> extract -> claim -> credit x2 -> book -> acknowledge.
func (s *DefaultFulfillmentService) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	logger := utils.GetLogger()

	event, err := s.Gateway.VerifyEvent(payload, signature)
	if err != nil {
		return err
	}
	if event.Type != eventCheckoutCompleted {
		logger.Debug("ignoring payment event", zap.String("type", event.Type))
		return nil
	}

	// An empty session id would claim and index on "", pinning every
	// malformed delivery to the same record.
	if event.SessionID == "" {
		return models.NewValidationError("payment event has no session id")
	}

	intent, err := parseBookingIntent(event)
	if err != nil {
		return err
	}

	claim, created, err := s.ClaimRepo.Claim(ctx, event.SessionID)
	if err != nil {
		return models.NewUnavailableError("could not claim payment event: %v", err)
	}
	if !created && claim.Status == models.ClaimCompleted {
		logger.Info("duplicate payment event acknowledged",
			zap.String("sessionId", event.SessionID))
		return nil
	}
	// Either a fresh claim or a crashed run being resumed; every step
	// below checks its own work before repeating it.

	fee, providerShare := SplitAmount(intent.Amount)

	if _, err := s.creditOnce(ctx, event.SessionID, intent,
		config.AppConfig.AdminOwnerID, models.OwnerAdmin,
		fee, models.PurposePlatformFee,
		fmt.Sprintf("Platform fee for session on %s at %s", intent.Date, intent.StartTime)); err != nil {
		return err
	}

	providerTxn, err := s.creditOnce(ctx, event.SessionID, intent,
		intent.ProviderID, models.OwnerTherapist,
		providerShare, models.PurposeProviderShare,
		fmt.Sprintf("Session payment for %s at %s", intent.Date, intent.StartTime))
	if err != nil {
		return err
	}

	appointment, err := s.AppointmentRepo.GetBySessionID(ctx, event.SessionID)
	if err != nil {
		return models.NewUnavailableError("could not check for existing appointment: %v", err)
	}
	if appointment == nil {
		now := time.Now()
		appointment = &models.Appointment{
			ID:            uuid.New().String(),
			ProviderID:    intent.ProviderID,
			ClientID:      intent.ClientID,
			SlotID:        intent.SlotID,
			Date:          intent.Date,
			Mode:          intent.Mode,
			Status:        models.AppointmentScheduled,
			TransactionID: providerTxn.ID,
			SessionID:     event.SessionID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.AppointmentRepo.Create(ctx, appointment); err != nil {
			// A concurrent delivery won the insert race; its appointment stands.
			if models.ErrorCode(err) != models.CodeConflict {
				return models.NewUnavailableError("could not create appointment: %v", err)
			}
		}
	}

	if err := s.ClaimRepo.MarkCompleted(ctx, event.SessionID); err != nil {
		return models.NewUnavailableError("could not complete fulfillment claim: %v", err)
	}

	s.invalidateAvailability(ctx, intent.ProviderID, intent.Date)

	logger.Info("payment fulfilled",
		zap.String("sessionId", event.SessionID),
		zap.String("providerId", intent.ProviderID),
		zap.String("clientId", intent.ClientID),
		zap.Float64("amount", intent.Amount),
		zap.Float64("platformFee", fee),
		zap.Float64("providerShare", providerShare))
	return nil
}

// creditOnce applies one of the two session credits if and only if it has
// not been applied before. The balance increment and the ledger record land
// together; a partial failure surfaces as an error and is retried by the
// gateway's own redelivery.
func (s *DefaultFulfillmentService) creditOnce(
	ctx context.Context,
	sessionID string,
	intent *models.BookingIntent,
	ownerID, ownerType string,
	amount float64,
	purpose, description string,
) (*models.Transaction, error) {
	existing, err := s.WalletRepo.FindTransactionBySession(ctx, sessionID, purpose)
	if err != nil {
		return nil, models.NewUnavailableError("could not check for prior credit: %v", err)
	}
	if existing != nil {
		return existing, nil
	}

	wallet, err := s.WalletRepo.GetOrCreate(ctx, ownerID, ownerType)
	if err != nil {
		return nil, models.NewUnavailableError("could not resolve %s wallet: %v", ownerType, err)
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		WalletID:    wallet.ID,
		Type:        models.TxnCredit,
		Amount:      amount,
		Description: description,
		Status:      models.TxnCompleted,
		Metadata: models.TransactionMetadata{
			Purpose:    purpose,
			SessionID:  sessionID,
			SlotID:     intent.SlotID,
			ProviderID: intent.ProviderID,
			ClientID:   intent.ClientID,
		},
		CreatedAt: time.Now(),
	}
	if err := s.WalletRepo.CreditWithTransaction(ctx, wallet.ID, txn); err != nil {
		if models.ErrorCode(err) == models.CodeConflict {
			// Lost the race against a concurrent delivery; the credit exists.
			return s.WalletRepo.FindTransactionBySession(ctx, sessionID, purpose)
		}
		return nil, models.NewUnavailableError("could not credit %s wallet: %v", ownerType, err)
	}
	return txn, nil
}

// parseBookingIntent decodes the checkout metadata back into typed fields.
func parseBookingIntent(event *models.PaymentEvent) (*models.BookingIntent, error) {
	required := []string{"slotId", "providerId", "clientId", "mode", "date", "startTime", "amount"}
	for _, key := range required {
		if event.Metadata[key] == "" {
			return nil, models.NewValidationError("payment event metadata missing %q", key)
		}
	}
	amount, err := strconv.ParseFloat(event.Metadata["amount"], 64)
	if err != nil || amount <= 0 {
		return nil, models.NewValidationError("payment event has invalid amount %q", event.Metadata["amount"])
	}
	return &models.BookingIntent{
		SlotID:     event.Metadata["slotId"],
		ProviderID: event.Metadata["providerId"],
		ClientID:   event.Metadata["clientId"],
		Mode:       event.Metadata["mode"],
		Date:       event.Metadata["date"],
		StartTime:  event.Metadata["startTime"],
		Amount:     amount,
	}, nil
}

// invalidateAvailability drops the cached availability for the booked day.
func (s *DefaultFulfillmentService) invalidateAvailability(ctx context.Context, providerID, date string) {
	if s.Cache == nil {
		return
	}
	epoch := utils.AvailabilityEpoch(ctx, s.Cache, providerID)
	key := utils.AvailabilityCacheKey(providerID, epoch, date)
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Debug("failed to invalidate availability cache",
			zap.String("key", key), zap.Error(err))
	}
}
