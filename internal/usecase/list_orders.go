package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/logging"
)

// ListOrders returns a user's live orders, newest first. Records past the
// retention window are deleted as a side effect of the call that would
// have returned them, so a caller never observes an expired order.
//
// Reads are throttled by a per-user cooldown: inside the window the last
// known good result is served from memory without touching storage.
// Concurrent callers for the same user collapse to one storage query.
type ListOrders struct {
	repo     OrderRepo
	cooldown *Cooldown
	now      func() time.Time

	sf singleflight.Group

	mu       sync.Mutex
	lastGood map[string][]domain.Order
}

func NewListOrders(repo OrderRepo, cooldown *Cooldown) *ListOrders {
	return &ListOrders{
		repo:     repo,
		cooldown: cooldown,
		now:      time.Now,
		lastGood: make(map[string][]domain.Order),
	}
}

func (uc *ListOrders) Execute(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	if !uc.cooldown.Allow(userID) {
		return uc.cached(userID), nil
	}

	v, err, _ := uc.sf.Do(userID, func() (any, error) {
		return uc.fetch(ctx, userID)
	})
	if err != nil {
		// Storage failed or the caller went away mid-read: the cache is
		// untouched, so previously loaded orders stay visible.
		return uc.cached(userID), fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return v.([]domain.Order), nil
}

// Cached returns the last known good result without consulting storage.
func (uc *ListOrders) Cached(userID string) []domain.Order {
	return uc.cached(userID)
}

func (uc *ListOrders) fetch(ctx context.Context, userID string) ([]domain.Order, error) {
	all, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	live := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if o.Expired(now) {
			// Purge rides along with the read; a delete failure is logged
			// and retried by the next read or the retention worker.
			if err := uc.repo.Delete(ctx, o.ID); err != nil {
				logging.FromCtx(ctx).Warn("expired order delete failed",
					"order_id", o.ID, "err", err)
			}
			continue
		}
		live = append(live, o)
	}

	sort.Slice(live, func(i, j int) bool {
		return live[i].CreatedAt.After(live[j].CreatedAt)
	})

	// Only a complete successful read replaces the cache; a partial
	// result never overwrites a fuller previous one.
	uc.mu.Lock()
	uc.lastGood[userID] = live
	uc.mu.Unlock()

	return live, nil
}

func (uc *ListOrders) cached(userID string) []domain.Order {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.Order, len(uc.lastGood[userID]))
	copy(out, uc.lastGood[userID])
	return out
}
