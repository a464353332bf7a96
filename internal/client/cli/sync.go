package cli

import (
	"context"
	"fmt"
	"log"
)

// Sync runs the first-sync bootstrap for the logged-in employee.
func (a *App) Sync(ctx context.Context) error {
	if a.empID == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := a.sync.FirstSync(ctx, a.empID); err != nil {
		log.Printf("Sync unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Sync complete.")
	return nil
}
