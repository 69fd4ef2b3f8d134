package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errMissing = errors.New("order not found")

// asUser stands in for the bearer-token middleware in handler tests.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	createErr error
	listErr   error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, errMissing
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeOrderRepo) UpdateStatusIf(_ context.Context, id string, from, to domain.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

type fakeIdemStore struct {
	mu    sync.Mutex
	locks map[string]bool
	memo  map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{locks: make(map[string]bool), memo: make(map[string]string)}
}

func (f *fakeIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + ":" + key
	if f.locks[k] {
		return false, nil
	}
	f.locks[k] = true
	return true, nil
}

func (f *fakeIdemStore) Release(_ context.Context, scope, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, scope+":"+key)
	return nil
}

func (f *fakeIdemStore) Remember(_ context.Context, scope, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memo[scope+":"+key] = value
	return nil
}

func (f *fakeIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.memo[scope+":"+key]
	return v, ok, nil
}

type fakeStatusCache struct {
	mu sync.Mutex
	m  map[string]domain.Status

	getErr error
}

func newFakeStatusCache() *fakeStatusCache {
	return &fakeStatusCache{m: make(map[string]domain.Status)}
}

func (f *fakeStatusCache) SetStatus(_ context.Context, userID, orderID string, st domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[userID+":"+orderID] = st
	return nil
}

func (f *fakeStatusCache) GetStatus(_ context.Context, userID, orderID string) (domain.Status, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	st, ok := f.m[userID+":"+orderID]
	return st, ok, nil
}

type fakeGateway struct {
	chargeFn func(ctx context.Context, userID string, amountPaise int64, ref string) (string, error)
}

func (f *fakeGateway) Charge(ctx context.Context, userID string, amountPaise int64, ref string) (string, error) {
	return f.chargeFn(ctx, userID, amountPaise, ref)
}
