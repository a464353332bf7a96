package services

import (
	"context"
	"fmt"

	"github.com/rafiqdev/fieldforce/internal/client/repositories/prefs"
	"github.com/rafiqdev/fieldforce/internal/logging"
)

// OrderService maintains the local order counters that feed the dashboard:
// the posted-order count and the pending-approval red dot.
type OrderService interface {
	RecordPostedOrder(ctx context.Context) error
	PostedOrderCount(ctx context.Context) (int, error)
	SetPendingApproval(ctx context.Context, pending bool) error
	HasPendingApproval(ctx context.Context) (bool, error)
}

type orderService struct {
	prefs *prefs.Store
	log   logging.Logger
}

func NewOrderService(prefsStore *prefs.Store, log logging.Logger) OrderService {
	return &orderService{
		prefs: prefsStore,
		log:   log.With("component", "orders"),
	}
}

func (o *orderService) RecordPostedOrder(ctx context.Context) error {
	info, err := o.prefs.PostOrderInfo(ctx)
	if err != nil {
		return fmt.Errorf("reading post-order info: %w", err)
	}
	info.Count++
	if err := o.prefs.SetPostOrderInfo(ctx, info); err != nil {
		return fmt.Errorf("saving post-order info: %w", err)
	}
	o.log.Info(ctx, "order posted", "count", info.Count)
	return nil
}

func (o *orderService) PostedOrderCount(ctx context.Context) (int, error) {
	info, err := o.prefs.PostOrderInfo(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading post-order info: %w", err)
	}
	return info.Count, nil
}

func (o *orderService) SetPendingApproval(ctx context.Context, pending bool) error {
	if err := o.prefs.SetBool(ctx, prefs.KeyPendingApprovalFlag, pending); err != nil {
		return fmt.Errorf("saving pending-approval flag: %w", err)
	}
	return nil
}

func (o *orderService) HasPendingApproval(ctx context.Context) (bool, error) {
	return o.prefs.Bool(ctx, prefs.KeyPendingApprovalFlag, false)
}
