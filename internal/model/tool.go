// Package model defines domain entities for the application.
package model

import "time"

// BillingCycle represents how often a tool subscription renews.
type BillingCycle string

const (
	BillingMonthly  BillingCycle = "monthly"
	BillingAnnually BillingCycle = "annually"
)

// IsValid checks if the billing cycle is a known value.
func (b BillingCycle) IsValid() bool {
	return b == BillingMonthly || b == BillingAnnually
}

// Tool represents a shared subscription or asset owned by one user.
type Tool struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	BillingCycle BillingCycle `json:"billing_cycle"`
	RenewalDate  time.Time    `json:"renewal_date"`
	OwnerID      string       `json:"owner_id"`
	LastUsed     *time.Time   `json:"last_used,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// OwnedBy reports whether the given user is the tool's owner.
// Every mutation and owner-facing read is gated on this predicate.
func (t *Tool) OwnedBy(userID string) bool {
	return t.OwnerID == userID
}
