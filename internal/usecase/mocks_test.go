package usecase

import (
	"context"
	"sync"
	"time"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	createErr error
	listErr   error
	deleteErr error

	createCalls int
	deleteCalls []string
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, errNotFound
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, id)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, o := range m.orders {
		if !o.CreatedAt.After(cutoff) {
			delete(m.orders, id)
			n++
		}
	}
	return n, nil
}

func (m *mockOrderRepo) UpdateStatusIf(_ context.Context, id string, from, to domain.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

type mockIdemStore struct {
	mu    sync.Mutex
	locks map[string]bool
	memo  map[string]string

	tryLockErr error
}

func newMockIdemStore() *mockIdemStore {
	return &mockIdemStore{locks: make(map[string]bool), memo: make(map[string]string)}
}

func (m *mockIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tryLockErr != nil {
		return false, m.tryLockErr
	}
	k := scope + ":" + key
	if m.locks[k] {
		return false, nil
	}
	m.locks[k] = true
	return true, nil
}

func (m *mockIdemStore) Release(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, scope+":"+key)
	return nil
}

func (m *mockIdemStore) Remember(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memo[scope+":"+key] = value
	return nil
}

func (m *mockIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.memo[scope+":"+key]
	return v, ok, nil
}

type mockEvents struct {
	mu        sync.Mutex
	published []OrderPlacedMsg
}

func (m *mockEvents) PublishPlaced(_ context.Context, msg OrderPlacedMsg) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, msg)
	return nil
}

type mockGateway struct {
	chargeFn func(ctx context.Context, userID string, amountPaise int64, ref string) (string, error)

	mu      sync.Mutex
	charges int
}

func (m *mockGateway) Charge(ctx context.Context, userID string, amountPaise int64, ref string) (string, error) {
	m.mu.Lock()
	m.charges++
	m.mu.Unlock()
	return m.chargeFn(ctx, userID, amountPaise, ref)
}

type mockIngredientSource struct {
	fn func(ctx context.Context, dish string) ([]string, error)
}

func (m *mockIngredientSource) Ingredients(ctx context.Context, dish string) ([]string, error) {
	return m.fn(ctx, dish)
}
