package booking

import (
	"context"
	"fmt"
	"sync"

	"mentora/models"
)

// In-memory stand-ins for the Mongo repositories. Each one mirrors the
// conditional-update semantics the real implementation gets from unique
// indexes, so the idempotency behavior under test is the real one.

type fakeScheduleRepo struct {
	schedules map[string]*models.WeeklySchedule
	err       error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]*models.WeeklySchedule)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *models.WeeklySchedule) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.schedules[s.ProviderID]; ok {
		return models.NewConflictError("weekly schedule already exists for provider %s", s.ProviderID)
	}
	f.schedules[s.ProviderID] = s
	return nil
}

func (f *fakeScheduleRepo) GetByProviderID(ctx context.Context, providerID string) (*models.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules[providerID], nil
}

func (f *fakeScheduleRepo) ReplaceDays(ctx context.Context, providerID string, days []models.DaySchedule) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	s, ok := f.schedules[providerID]
	if !ok {
		return false, nil
	}
	s.Days = days
	return true, nil
}

func (f *fakeScheduleRepo) EnsureIndexes() error { return nil }

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
	err          error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.appointments {
		if existing.SessionID != "" && existing.SessionID == a.SessionID {
			return models.NewConflictError("appointment already booked for session %s", a.SessionID)
		}
	}
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeAppointmentRepo) GetActiveByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.ProviderID == providerID && a.Date == date && a.Status != models.AppointmentCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.appointments {
		if f.appointments[i].SessionID == sessionID {
			a := f.appointments[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) EnsureIndexes() error { return nil }

type fakeWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*models.Wallet // key ownerType/ownerID
	txns    []models.Transaction
	seq     int

	failCredit map[string]bool // purposes whose credit should fail once
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets:    make(map[string]*models.Wallet),
		failCredit: make(map[string]bool),
	}
}

func (f *fakeWalletRepo) ownerKey(ownerID, ownerType string) string {
	return ownerType + "/" + ownerID
}

func (f *fakeWalletRepo) GetOrCreate(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := f.ownerKey(ownerID, ownerType)
	if w, ok := f.wallets[key]; ok {
		cp := *w
		return &cp, nil
	}
	f.seq++
	w := &models.Wallet{
		ID:        fmt.Sprintf("wallet-%d", f.seq),
		OwnerID:   ownerID,
		OwnerType: ownerType,
	}
	f.wallets[key] = w
	cp := *w
	return &cp, nil
}

func (f *fakeWalletRepo) GetByID(ctx context.Context, walletID string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wallets {
		if w.ID == walletID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeWalletRepo) GetByOwner(ctx context.Context, ownerID, ownerType string) (*models.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wallets[f.ownerKey(ownerID, ownerType)]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWalletRepo) IncrementBalance(ctx context.Context, walletID string, delta float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wallets {
		if w.ID == walletID {
			if delta < 0 && w.Balance < -delta {
				return models.NewConflictError("wallet %s has insufficient balance for delta %.2f", walletID, delta)
			}
			w.Balance += delta
			return nil
		}
	}
	return models.NewNotFoundError("wallet %s not found", walletID)
}

func (f *fakeWalletRepo) CreditWithTransaction(ctx context.Context, walletID string, txn *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCredit[txn.Metadata.Purpose] {
		f.failCredit[txn.Metadata.Purpose] = false
		return fmt.Errorf("simulated store failure")
	}
	for _, t := range f.txns {
		if t.Metadata.SessionID == txn.Metadata.SessionID && t.Metadata.Purpose == txn.Metadata.Purpose {
			return models.NewConflictError("credit %s for session %s already recorded",
				txn.Metadata.Purpose, txn.Metadata.SessionID)
		}
	}
	for _, w := range f.wallets {
		if w.ID == walletID {
			w.Balance += txn.Amount
			f.txns = append(f.txns, *txn)
			return nil
		}
	}
	return fmt.Errorf("wallet %s not found for credit", walletID)
}

func (f *fakeWalletRepo) FindTransactionBySession(ctx context.Context, sessionID, purpose string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.txns {
		if f.txns[i].Metadata.SessionID == sessionID && f.txns[i].Metadata.Purpose == purpose {
			t := f.txns[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeWalletRepo) ListTransactions(ctx context.Context, walletID string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, t := range f.txns {
		if t.WalletID == walletID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeWalletRepo) Summarize(ctx context.Context, walletID string) (*models.WalletSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summary := &models.WalletSummary{}
	for _, w := range f.wallets {
		if w.ID == walletID {
			summary.Balance = w.Balance
		}
	}
	for _, t := range f.txns {
		if t.WalletID != walletID || t.Status != models.TxnCompleted {
			continue
		}
		switch t.Type {
		case models.TxnCredit:
			summary.TotalCredit += t.Amount
		case models.TxnDebit:
			summary.TotalDebit += t.Amount
		}
	}
	return summary, nil
}

func (f *fakeWalletRepo) EnsureIndexes() error { return nil }

func (f *fakeWalletRepo) balanceOf(ownerID, ownerType string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wallets[f.ownerKey(ownerID, ownerType)]; ok {
		return w.Balance
	}
	return 0
}

func (f *fakeWalletRepo) transactionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.txns)
}

type fakeClaimRepo struct {
	mu     sync.Mutex
	claims map[string]*models.FulfillmentClaim
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[string]*models.FulfillmentClaim)}
}

func (f *fakeClaimRepo) Claim(ctx context.Context, sessionID string) (*models.FulfillmentClaim, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.claims[sessionID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	claim := &models.FulfillmentClaim{SessionID: sessionID, Status: models.ClaimProcessing}
	f.claims[sessionID] = claim
	cp := *claim
	return &cp, true, nil
}

func (f *fakeClaimRepo) MarkCompleted(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	claim, ok := f.claims[sessionID]
	if !ok {
		return fmt.Errorf("no claim found for session %s", sessionID)
	}
	claim.Status = models.ClaimCompleted
	return nil
}

func (f *fakeClaimRepo) EnsureIndexes() error { return nil }

// fakeGateway verifies events by comparing the signature against a fixed
// secret and treats the payload as the session id.
type fakeGateway struct {
	secret   string
	event    *models.PaymentEvent
	sessions []models.GatewaySessionRequest
	receipt  *models.CheckoutReceipt
	seq      int
}

func (g *fakeGateway) CreateSession(ctx context.Context, req models.GatewaySessionRequest) (*models.CheckoutResult, error) {
	g.sessions = append(g.sessions, req)
	g.seq++
	return &models.CheckoutResult{
		SessionID:   fmt.Sprintf("sess_%d", g.seq),
		RedirectURL: "https://checkout.example.com/pay",
	}, nil
}

func (g *fakeGateway) VerifyEvent(payload []byte, signature string) (*models.PaymentEvent, error) {
	if signature != g.secret {
		return nil, models.NewSecurityError("webhook signature verification failed")
	}
	return g.event, nil
}

func (g *fakeGateway) GetSession(ctx context.Context, sessionID string) (*models.CheckoutReceipt, error) {
	if g.receipt != nil {
		return g.receipt, nil
	}
	return nil, models.NewNotFoundError("session %s not found", sessionID)
}
