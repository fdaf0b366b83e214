package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mentora/config"
	scheduleRepo "mentora/database/repository/schedule"
	"mentora/models"
	"mentora/utils"

	"go.uber.org/zap"
)

// CheckoutService turns a chosen slot into an external payment session.
type CheckoutService interface {
	CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResult, error)
	GetReceipt(ctx context.Context, sessionID string) (*models.CheckoutReceipt, error)
}

// DefaultCheckoutService implements CheckoutService. It re-validates the
// request against the live template rather than trusting the caller: the
// template may have changed between browse time and checkout time.
type DefaultCheckoutService struct {
	ScheduleRepo scheduleRepo.ScheduleRepository
	Gateway      PaymentGateway
}

// CreateCheckout locates the slot on the live template, verifies the mode,
// and opens a gateway session for the slot's authoritative price. The
// booking intent rides along as opaque string metadata.
func (s *DefaultCheckoutService) CreateCheckout(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResult, error) {
	logger := utils.GetLogger()

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, models.NewValidationError("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	sched, err := s.ScheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		return nil, models.NewUnavailableError("could not load weekly schedule: %v", err)
	}
	if sched == nil {
		return nil, models.NewNotFoundError("no weekly schedule exists for provider %s", req.ProviderID)
	}

	weekday := day.Weekday().String()
	var daySched *models.DaySchedule
	for i := range sched.Days {
		if sched.Days[i].Day == weekday {
			daySched = &sched.Days[i]
			break
		}
	}
	if daySched == nil {
		return nil, models.NewNotFoundError("provider %s has no slots on %s", req.ProviderID, weekday)
	}

	var slot *models.SlotTemplate
	for i := range daySched.Slots {
		if daySched.Slots[i].StartTime == req.StartTime {
			slot = &daySched.Slots[i]
			break
		}
	}
	if slot == nil {
		return nil, models.NewNotFoundError("no slot starts at %s on %s", req.StartTime, weekday)
	}

	mode := strings.ToLower(req.Mode)
	supported := false
	for _, m := range slot.Modes {
		if strings.ToLower(m) == mode {
			supported = true
			break
		}
	}
	if !supported {
		return nil, models.NewValidationError("mode %q is not offered on slot %s", req.Mode, req.StartTime)
	}

	// The client-submitted price is display-only; the slot's stored price
	// is what gets charged.
	if req.Price != slot.Price {
		logger.Warn("checkout price mismatch, using authoritative slot price",
			zap.String("providerId", req.ProviderID),
			zap.String("slotId", slot.ID),
			zap.Float64("submitted", req.Price),
			zap.Float64("authoritative", slot.Price))
	}

	gwReq := models.GatewaySessionRequest{
		Amount:      slot.Price,
		Currency:    config.AppConfig.Currency,
		Description: fmt.Sprintf("Therapy session on %s at %s", req.Date, slot.StartTime),
		SuccessURL:  config.AppConfig.CheckoutSuccessURL,
		CancelURL:   config.AppConfig.CheckoutCancelURL,
		Metadata: map[string]string{
			"slotId":     slot.ID,
			"providerId": req.ProviderID,
			"clientId":   req.ClientID,
			"mode":       mode,
			"date":       req.Date,
			"startTime":  slot.StartTime,
			"amount":     strconv.FormatFloat(slot.Price, 'f', 2, 64),
		},
	}
	result, err := s.Gateway.CreateSession(ctx, gwReq)
	if err != nil {
		return nil, err
	}

	logger.Info("checkout session created",
		zap.String("sessionId", result.SessionID),
		zap.String("providerId", req.ProviderID),
		zap.String("clientId", req.ClientID),
		zap.String("slotId", slot.ID))
	return result, nil
}

// GetReceipt retrieves a read-only view of a gateway session.
func (s *DefaultCheckoutService) GetReceipt(ctx context.Context, sessionID string) (*models.CheckoutReceipt, error) {
	if sessionID == "" {
		return nil, models.NewValidationError("missing session id")
	}
	return s.Gateway.GetSession(ctx, sessionID)
}
