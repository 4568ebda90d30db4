package types

import "errors"

var (
	ErrPurchaseNotFound  = errors.New("Purchase not found")
	ErrMissingInsurance  = errors.New("Missing vehicle insurance or insurance provider")
	ErrMissingSaleBill   = errors.New("Missing sales bill")
	ErrUserNotFound      = errors.New("User not found")
	ErrInvalidPassword   = errors.New("Invalid password")
	ErrInvalidToken      = errors.New("Invalid token")
	ErrCodeNotFound      = errors.New("Code not found")
	ErrPlateCodeExists   = errors.New("Plate code already exists")
	ErrPolicyExists      = errors.New("Policy number already exists")
	ErrPlateCodeNotFound = errors.New("Plate code not found")
	ErrPaymentIncomplete = errors.New("Payment information is incomplete or missing")
	ErrPaymentNotDone    = errors.New("Payment not completed")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInternal          = errors.New("Internal server error")
	ErrBodyTooLarge      = errors.New("Request body too large")
)
