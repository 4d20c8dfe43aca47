package domain

import "time"

// CreditBalance is the user's current credit balance. Read-only from the
// client's perspective; the billing service mutates it.
type CreditBalance struct {
	UserID  string `json:"user_id"`
	Balance int    `json:"balance"`
}

// LedgerEntry is one credit mutation recorded by the billing service.
type LedgerEntry struct {
	ID          int64     `json:"id"`
	Delta       int       `json:"delta"`
	Reason      string    `json:"reason"`
	ReferenceID string    `json:"reference_id"`
	CreatedAt   time.Time `json:"created_at"`
}
