package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) CheckIn(ctx context.Context) error {
	if err := a.attendance.CheckIn(ctx); err != nil {
		log.Printf("Check-in unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Checked in.")
	return nil
}

func (a *App) CheckOut(ctx context.Context) error {
	if err := a.attendance.CheckOut(ctx); err != nil {
		log.Printf("Check-out unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Checked out.")
	return nil
}
