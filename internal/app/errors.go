/**
 * @description
 * Sentinel errors shared by the application services. Every operation
 * returns one of these on failure instead of panicking, so callers (and the
 * HTTP layer) can branch with errors.Is and map failures to reason codes.
 */
package app

import "errors"

var (
	// Wallet validation and funds failures.
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrAmountExceedsCap  = errors.New("amount exceeds the top-up cap")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Subscription failures.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidBillingCycle  = errors.New("billing cycle must be monthly or yearly")
	ErrMissingName          = errors.New("subscription name is required")

	// Catalog failures.
	ErrServiceNotFound = errors.New("regional service not found")
	ErrPlanNotFound    = errors.New("service plan not found")
	ErrBundleNotFound  = errors.New("bundle not found")

	// Settings failures.
	ErrInvalidTheme     = errors.New("theme must be light, dark or system")
	ErrInvalidFontScale = errors.New("font scale must be between 75 and 150")

	// Auth failures.
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
