package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/freshcart/freshcart-api/internal/entity"
)

func lineItem(id string) domain.LineItem {
	return domain.LineItem{ProductID: id, Name: id, UnitPricePaise: 1000}
}

func TestStoreAddAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Add(lineItem("v1"))
	s.Add(lineItem("v2"))
	s.Add(lineItem("v1"))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "v1", snap[0].ProductID)
	assert.Equal(t, 2, snap[0].Quantity)
	assert.Equal(t, 1, snap[1].Quantity)
	assert.Equal(t, 2, s.Len())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewStore()
	s.Add(lineItem("v1"))

	snap := s.Snapshot()
	s.Add(lineItem("v1"))
	s.Add(lineItem("v2"))

	// The earlier snapshot must not see later mutations.
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)

	// Nor can writing through a snapshot reach the store.
	snap[0].Quantity = 99
	assert.Equal(t, 2, s.Snapshot()[0].Quantity)
}

func TestStoreRemoveAndClear(t *testing.T) {
	s := NewStore()
	s.Add(lineItem("v1"))
	s.Add(lineItem("v2"))

	s.Remove("v1")
	require.Len(t, s.Snapshot(), 1)

	s.Remove("missing") // no-op
	require.Len(t, s.Snapshot(), 1)

	s.Clear()
	assert.Empty(t, s.Snapshot())
}

func TestStoreAdjustQuantity(t *testing.T) {
	s := NewStore()
	s.Add(lineItem("v1"))

	s.AdjustQuantity("v1", 3)
	assert.Equal(t, 4, s.Snapshot()[0].Quantity)

	s.AdjustQuantity("v1", -100)
	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
}

func TestStoreSerializesParallelMutators(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(lineItem("v1"))
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap, 1, "parallel adds must never duplicate a product id")
	assert.Equal(t, 50, snap[0].Quantity)
}

func TestRegistryScopesStoresPerUser(t *testing.T) {
	r := NewRegistry()
	r.For("alice").Add(lineItem("v1"))

	assert.Equal(t, 1, r.For("alice").Len())
	assert.Equal(t, 0, r.For("bob").Len())

	// Same user gets the same store back.
	assert.Same(t, r.For("alice"), r.For("alice"))

	r.Drop("alice")
	assert.Equal(t, 0, r.For("alice").Len())
}
