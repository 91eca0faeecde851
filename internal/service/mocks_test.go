package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"wastecollect/internal/domain"
	"wastecollect/internal/momo"
	"wastecollect/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK GATEWAY
// ──────────────────────────────────────────────

type statusTick struct {
	result momo.TransactionResult
	err    error
}

// MockGateway is a mock implementation of Gateway. Status checks consume a
// queued sequence of ticks; the last tick repeats once the queue is drained.
type MockGateway struct {
	mu    sync.Mutex
	ticks []statusTick

	TransactionID string

	// Counters for verification
	RequestToPayCallCount int32
	GetStatusCallCount    int32

	// Error injection
	RequestToPayError error
}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{TransactionID: "txn-1"}
}

// QueueStatus appends a status tick to the response sequence.
func (m *MockGateway) QueueStatus(result momo.TransactionResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks = append(m.ticks, statusTick{result: result, err: err})
}

func (m *MockGateway) RequestToPay(ctx context.Context, payer string, amount float64) (string, error) {
	atomic.AddInt32(&m.RequestToPayCallCount, 1)
	if m.RequestToPayError != nil {
		return "", m.RequestToPayError
	}
	return m.TransactionID, nil
}

func (m *MockGateway) GetStatus(ctx context.Context, correlationID string) (momo.TransactionResult, error) {
	atomic.AddInt32(&m.GetStatusCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ticks) == 0 {
		return momo.TransactionResult{Status: domain.TransactionStatusUnknown}, nil
	}
	tick := m.ticks[0]
	if len(m.ticks) > 1 {
		m.ticks = m.ticks[1:]
	}
	return tick.result, tick.err
}

// ──────────────────────────────────────────────
// MOCK SETTLEMENT STORE
// ──────────────────────────────────────────────

// MockSettlementStore is an in-memory implementation of SettlementStore. Each
// RunInTx call holds the store lock for its whole duration, emulating
// serialized transactions, and rolls its changes back when fn fails.
type MockSettlementStore struct {
	mu       sync.Mutex
	requests map[string]*domain.WasteRequest
	payments []*domain.PaymentRecord
	removed  []string

	// Counters for verification
	RunInTxCallCount int32

	// Error injection
	RunInTxError       error
	CreatePaymentError error
	MarkPaidError      error
}

// NewMockSettlementStore creates a new mock settlement store.
func NewMockSettlementStore() *MockSettlementStore {
	return &MockSettlementStore{
		requests: make(map[string]*domain.WasteRequest),
	}
}

// AddRequest seeds a request into the store.
func (m *MockSettlementStore) AddRequest(request *domain.WasteRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = request
}

// AddPayment seeds an existing payment record into the store.
func (m *MockSettlementStore) AddPayment(record *domain.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *record
	m.payments = append(m.payments, &copy)
}

// PaymentCount returns the number of payment records.
func (m *MockSettlementStore) PaymentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

// PaymentsFor returns the payment records for a request id.
func (m *MockSettlementStore) PaymentsFor(requestID string) []*domain.PaymentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.PaymentRecord
	for _, p := range m.payments {
		if p.RequestID == requestID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out
}

// RequestStatus returns the current status of a request.
func (m *MockSettlementStore) RequestStatus(id string) domain.RequestStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.requests[id]
	if !ok {
		return ""
	}
	return request.Status
}

// RemovedCartRequestIDs returns the request ids passed to RemoveCartItems.
func (m *MockSettlementStore) RemovedCartRequestIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

func (m *MockSettlementStore) RunInTx(ctx context.Context, fn func(tx repository.SettlementTx) error) error {
	atomic.AddInt32(&m.RunInTxCallCount, 1)
	if m.RunInTxError != nil {
		return m.RunInTxError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Snapshot for rollback.
	paymentsBefore := len(m.payments)
	removedBefore := len(m.removed)
	statusesBefore := make(map[string]domain.RequestStatus, len(m.requests))
	for id, request := range m.requests {
		statusesBefore[id] = request.Status
	}

	err := fn(&mockSettlementTx{store: m})
	if err != nil {
		m.payments = m.payments[:paymentsBefore]
		m.removed = m.removed[:removedBefore]
		for id, status := range statusesBefore {
			m.requests[id].Status = status
		}
	}
	return err
}

// mockSettlementTx operates on the store's state; the store lock is already
// held for the transaction's duration.
type mockSettlementTx struct {
	store *MockSettlementStore
}

func (t *mockSettlementTx) FindPendingRequestsByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error) {
	var out []*domain.WasteRequest
	for _, id := range ids {
		request, ok := t.store.requests[id]
		if !ok || request.Status != domain.RequestStatusPending {
			continue
		}
		copy := *request
		out = append(out, &copy)
	}
	return out, nil
}

func (t *mockSettlementTx) MarkRequestPaid(ctx context.Context, id string) error {
	if t.store.MarkPaidError != nil {
		return t.store.MarkPaidError
	}
	request, ok := t.store.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	request.Status = domain.RequestStatusPaid
	return nil
}

func (t *mockSettlementTx) CreatePaymentUnlessRecentlyPaid(ctx context.Context, record *domain.PaymentRecord, window time.Duration) (bool, error) {
	if t.store.CreatePaymentError != nil {
		return false, t.store.CreatePaymentError
	}
	for _, existing := range t.store.payments {
		if existing.RequestID != record.RequestID {
			continue
		}
		if existing.TransactionID == record.TransactionID {
			return false, nil
		}
		if existing.PaidAt.After(record.PaidAt.Add(-window)) {
			return false, nil
		}
	}
	copy := *record
	t.store.payments = append(t.store.payments, &copy)
	return true, nil
}

func (t *mockSettlementTx) RemoveCartItems(ctx context.Context, requestIDs []string) error {
	t.store.removed = append(t.store.removed, requestIDs...)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu   sync.Mutex
	held map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireSettlementLock(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[transactionID] {
		return false, nil
	}
	m.held[transactionID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseSettlementLock(ctx context.Context, transactionID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, transactionID)
	return nil
}

// HoldLock pre-acquires a lock, simulating another settlement in flight.
func (m *MockLockStore) HoldLock(transactionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[transactionID] = true
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier is a mock implementation of PaymentNotifier.
type MockNotifier struct {
	mu             sync.Mutex
	LastPayerEmail string
	LastAmount     float64
	notifiedUsers  []string

	// Counters for verification
	PayerCallCount int32
	AdminCallCount int32
	UserCallCount  int32

	// Error injection
	PayerError error
	AdminError error
	UserError  error
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyPaymentReceived(ctx context.Context, email string, amount float64, transactionID string) error {
	atomic.AddInt32(&m.PayerCallCount, 1)
	m.mu.Lock()
	m.LastPayerEmail = email
	m.LastAmount = amount
	m.mu.Unlock()
	return m.PayerError
}

func (m *MockNotifier) NotifyAdminPaymentReceived(ctx context.Context, amount float64, transactionID, payerEmail string) error {
	atomic.AddInt32(&m.AdminCallCount, 1)
	return m.AdminError
}

func (m *MockNotifier) NotifyUserPaymentRecorded(ctx context.Context, userID string, amount float64, transactionID string) error {
	atomic.AddInt32(&m.UserCallCount, 1)
	if m.UserError != nil {
		return m.UserError
	}
	m.mu.Lock()
	m.notifiedUsers = append(m.notifiedUsers, userID)
	m.mu.Unlock()
	return nil
}

// NotifiedUsers returns the user ids that received in-app receipts.
func (m *MockNotifier) NotifiedUsers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.notifiedUsers...)
}

// ──────────────────────────────────────────────
// MOCK SETTLER
// ──────────────────────────────────────────────

// MockSettler is a mock implementation of Settler.
type MockSettler struct {
	mu       sync.Mutex
	requests []SettleRequest

	// Counters for verification
	SettleCallCount int32

	// Error injection
	SettleError error
}

// NewMockSettler creates a new mock settler.
func NewMockSettler() *MockSettler {
	return &MockSettler{}
}

func (m *MockSettler) Settle(ctx context.Context, req SettleRequest) error {
	atomic.AddInt32(&m.SettleCallCount, 1)
	if m.SettleError != nil {
		return m.SettleError
	}
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return nil
}

// LastSettleRequest returns the most recent settle request, if any.
func (m *MockSettler) LastSettleRequest() (SettleRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return SettleRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// ──────────────────────────────────────────────
// MOCK REQUEST REPOSITORY
// ──────────────────────────────────────────────

// MockRequestRepository is a mock implementation of RequestRepository.
type MockRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.WasteRequest

	// Counters for verification
	CreateCallCount   int32
	MarkPaidCallCount int32

	// Error injection
	CreateError error
}

// NewMockRequestRepository creates a new mock request repository.
func NewMockRequestRepository() *MockRequestRepository {
	return &MockRequestRepository{requests: make(map[string]*domain.WasteRequest)}
}

// AddRequest adds a request to the mock repository.
func (m *MockRequestRepository) AddRequest(request *domain.WasteRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = request
}

func (m *MockRequestRepository) Create(ctx context.Context, request *domain.WasteRequest) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[request.ID] = request
	return nil
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.WasteRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	request, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *request
	return &copy, nil
}

func (m *MockRequestRepository) FindPendingByIDs(ctx context.Context, ids []string) ([]*domain.WasteRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.WasteRequest
	for _, id := range ids {
		request, ok := m.requests[id]
		if !ok || request.Status != domain.RequestStatusPending {
			continue
		}
		copy := *request
		out = append(out, &copy)
	}
	return out, nil
}

func (m *MockRequestRepository) FindPendingByUser(ctx context.Context, userID string) ([]*domain.WasteRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.WasteRequest
	for _, request := range m.requests {
		if request.UserID != userID || request.Status != domain.RequestStatusPending {
			continue
		}
		copy := *request
		out = append(out, &copy)
	}
	return out, nil
}

func (m *MockRequestRepository) MarkPaid(ctx context.Context, id string) error {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	request.Status = domain.RequestStatusPaid
	return nil
}

// ──────────────────────────────────────────────
// MOCK CART REPOSITORY
// ──────────────────────────────────────────────

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mu    sync.RWMutex
	items map[string][]string // sessionID -> requestIDs

	// Counters for verification
	AddItemCallCount int32

	// Error injection
	AddItemError error
}

// NewMockCartRepository creates a new mock cart repository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{items: make(map[string][]string)}
}

func (m *MockCartRepository) AddItem(ctx context.Context, sessionID, requestID string) error {
	atomic.AddInt32(&m.AddItemCallCount, 1)
	if m.AddItemError != nil {
		return m.AddItemError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.items[sessionID] {
		if id == requestID {
			return repository.ErrDuplicate
		}
	}
	m.items[sessionID] = append(m.items[sessionID], requestID)
	return nil
}

func (m *MockCartRepository) ListRequestIDs(ctx context.Context, sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.items[sessionID]...), nil
}

func (m *MockCartRepository) RemoveItems(ctx context.Context, requestIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := make(map[string]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		drop[id] = struct{}{}
	}
	for session, ids := range m.items {
		kept := ids[:0]
		for _, id := range ids {
			if _, ok := drop[id]; !ok {
				kept = append(kept, id)
			}
		}
		m.items[session] = kept
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK NOTIFICATION REPOSITORY
// ──────────────────────────────────────────────

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification

	// Counters for verification
	CreateCallCount      int32
	CountUnreadCallCount int32

	// Error injection
	CreateError error
}

// NewMockNotificationRepository creates a new mock notification repository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *notification
	m.notifications = append(m.notifications, &copy)
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			copy := *n
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	atomic.AddInt32(&m.CountUnreadCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu     sync.Mutex
	counts map[string]int

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{counts: make(map[string]int)}
}

func (m *MockCacheStore) GetUnreadCount(ctx context.Context, userID string) (int, bool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	count, ok := m.counts[userID]
	return count, ok, nil
}

func (m *MockCacheStore) SetUnreadCount(ctx context.Context, userID string, count int) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[userID] = count
	return nil
}

func (m *MockCacheStore) InvalidateUnreadCount(ctx context.Context, userID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, userID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK MAILER
// ──────────────────────────────────────────────

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer is a mock implementation of Mailer.
type MockMailer struct {
	mu   sync.Mutex
	sent []sentMail

	// Error injection
	SendError error
}

// NewMockMailer creates a new mock mailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

// SentMails returns a copy of the sent mail log.
func (m *MockMailer) SentMails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}
