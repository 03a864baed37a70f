/**
 * @description
 * Core domain models for subscription tracking. A Subscription is never
 * deleted, only transitioned between statuses; NextBilling is set while the
 * subscription is active and cleared when it is paused or cancelled.
 */
package domain

import "time"

// BillingCycle is the recurrence unit for a subscription's charge.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the supported values.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// SubscriptionStatus enumerates the lifecycle states of a subscription.
type SubscriptionStatus string

const (
	StatusActive        SubscriptionStatus = "active"
	StatusPaused        SubscriptionStatus = "paused"
	StatusCancelled     SubscriptionStatus = "cancelled"
	StatusPaymentFailed SubscriptionStatus = "payment_failed"
)

// Subscription represents one tracked recurring subscription.
//
// NextBilling is non-nil if and only if the subscription is active, with one
// exception: a payment_failed subscription keeps its missed due date so the
// user can see when the charge was attempted.
type Subscription struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	Icon         string             `json:"icon"`
	Price        float64            `json:"price"`
	BillingCycle BillingCycle       `json:"billing_cycle"`
	Status       SubscriptionStatus `json:"status"`
	StartDate    time.Time          `json:"start_date"`
	NextBilling  *time.Time         `json:"next_billing,omitempty"`
}

// NextCycle returns the billing date one cycle after from. Monthly adds one
// calendar month, yearly one calendar year; month-end overflow normalizes
// the way calendar arithmetic usually does (Jan 31 + 1 month = Mar 2/3).
func (s *Subscription) NextCycle(from time.Time) time.Time {
	if s.BillingCycle == CycleYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// NewSubscriptionInput carries the caller-supplied fields for Subscribe.
type NewSubscriptionInput struct {
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Icon         string       `json:"icon"`
	Price        float64      `json:"price"`
	BillingCycle BillingCycle `json:"billing_cycle"`
}
