package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

type sweepRepo struct {
	cutoffs []time.Time
	deleted int64
	err     error
}

func (r *sweepRepo) Create(context.Context, *domain.Order) error { return nil }
func (r *sweepRepo) GetByID(context.Context, string) (*domain.Order, error) {
	return nil, errors.New("not found")
}
func (r *sweepRepo) ListByUser(context.Context, string) ([]domain.Order, error) { return nil, nil }
func (r *sweepRepo) Delete(context.Context, string) error                       { return nil }
func (r *sweepRepo) UpdateStatusIf(context.Context, string, domain.Status, domain.Status) (bool, error) {
	return false, nil
}

func (r *sweepRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.cutoffs = append(r.cutoffs, cutoff)
	return r.deleted, r.err
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	repo := &sweepRepo{deleted: 3}
	w := NewRetentionWorker(repo, time.Hour)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.sweep(context.Background()))
	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, now.Add(-domain.RetentionWindow), repo.cutoffs[0])
}

func TestSweepCutoffCoversExpiryBoundary(t *testing.T) {
	repo := &sweepRepo{}
	w := NewRetentionWorker(repo, time.Hour)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.sweep(context.Background()))
	require.Len(t, repo.cutoffs, 1)

	// An order created exactly at the cutoff is already hidden by the
	// read path, so the inclusive delete must cover it in the same sweep.
	edge := domain.Order{CreatedAt: repo.cutoffs[0]}
	assert.True(t, edge.Expired(now))
	assert.False(t, edge.CreatedAt.After(repo.cutoffs[0]))
}

func TestSweepPropagatesStorageError(t *testing.T) {
	repo := &sweepRepo{err: errors.New("connection refused")}
	w := NewRetentionWorker(repo, time.Hour)

	assert.Error(t, w.sweep(context.Background()))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &sweepRepo{}
	w := NewRetentionWorker(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	assert.NotEmpty(t, repo.cutoffs, "at least one sweep should have run")
}
