package kafka

import (
	"context"

	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/logging"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

// FulfillmentHandler applies external fulfillment signals to stored
// orders. Transitions are guarded: only PROCESSING moves, so a replayed
// or late event can never walk a terminal order backwards.
type FulfillmentHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.StatusCache // optional
}

func NewFulfillmentHandler(repo usecase.OrderRepo, cache usecase.StatusCache) *FulfillmentHandler {
	return &FulfillmentHandler{Repo: repo, Cache: cache}
}

func (h *FulfillmentHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	to := domain.Status(ev.Status)
	if !domain.StatusProcessing.CanTransition(to) {
		// Skip rather than error: retrying a malformed event never helps.
		logging.FromCtx(ctx).Warn("ignoring illegal status transition",
			"order_id", ev.OrderID, "status", ev.Status)
		return nil
	}

	applied, err := h.Repo.UpdateStatusIf(ctx, ev.OrderID, domain.StatusProcessing, to)
	if err != nil {
		return err
	}
	if !applied {
		// Missing (possibly purged) or already terminal; nothing to do.
		return nil
	}

	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.UserID, ev.OrderID, to)
	}
	return nil
}
