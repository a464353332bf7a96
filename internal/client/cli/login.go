package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rafiqdev/fieldforce/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for the employee id and password and requests an OTP.
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	empID, err := getSimpleText(a.reader, "Enter employee id", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, empID, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.empID = empID
	fmt.Println("OTP sent. Run 'otp' to complete the login.")
	return nil
}

// ValidateOTP prompts for the OTP and completes the login.
func (a *App) ValidateOTP(ctx context.Context) error {
	if a.empID == "" {
		empID, err := getSimpleText(a.reader, "Enter employee id", os.Stdout)
		if err != nil {
			return err
		}
		a.empID = empID
	}

	otp, err := getSimpleText(a.reader, "Enter OTP", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.ValidateOTP(ctx, a.empID, otp); err != nil {
		log.Printf("OTP validation unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Logged in. Run 'sync' to fetch your data.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("Logout unsuccessful: %s", err.Error())
		return err
	}
	a.empID = ""
	fmt.Println("Logged out.")
	return nil
}

// UpdateToken re-registers the push token with the backend.
func (a *App) UpdateToken(ctx context.Context) error {
	if err := a.auth.UpdateFCMToken(ctx); err != nil {
		log.Printf("Token update unsuccessful: %s", err.Error())
		return err
	}
	fmt.Println("Push token updated.")
	return nil
}
