package cli

import (
	"context"
	"fmt"
	"log"
)

// Dashboard prints the merged dashboard summary.
func (a *App) Dashboard(ctx context.Context) error {
	summary, err := a.dashboard.Summary(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("%s (%s)\n", summary.EmployeeName, summary.EmployeeID)
	fmt.Printf("  attendance:       %s\n", summary.AttendanceStatus)
	fmt.Printf("  posted orders:    %d\n", summary.PostOrderCount)
	fmt.Printf("  pending approval: %v\n", summary.HasPendingApproval)
	if summary.LastSyncTime != "" {
		fmt.Printf("  last sync:        %s\n", summary.LastSyncTime)
	}
	if !summary.IsFirstSyncDone {
		fmt.Println("  first sync pending, run 'sync'")
	}
	return nil
}

// Menu prints the derived dashboard menu.
func (a *App) Menu(ctx context.Context) error {
	items, err := a.dashboard.MenuItems(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(items) == 0 {
		fmt.Println("No menu entries. Run 'sync' first.")
		return nil
	}

	for _, item := range items {
		dot := ""
		if item.IsRedDotVisible {
			dot = " *"
		}
		fmt.Printf("%3d  %s%s\n", item.Sequence, item.Title, dot)
	}
	return nil
}

// Notices prints the broadcast notices.
func (a *App) Notices(ctx context.Context) error {
	notices := a.dashboard.Notices(ctx)
	if len(notices) == 0 {
		fmt.Println("No notices.")
		return nil
	}

	for _, n := range notices {
		if n.Date != "" {
			fmt.Printf("[%s] %s: %s\n", n.Date, n.Title, n.Description)
		} else {
			fmt.Printf("%s: %s\n", n.Title, n.Description)
		}
	}
	return nil
}
