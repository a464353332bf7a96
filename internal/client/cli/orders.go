package cli

import (
	"context"
	"fmt"
	"log"
)

// PostOrder records a posted order in the local counter.
func (a *App) PostOrder(ctx context.Context) error {
	if err := a.orders.RecordPostedOrder(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	count, err := a.orders.PostedOrderCount(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	fmt.Printf("Order recorded. Total today: %d\n", count)
	return nil
}
