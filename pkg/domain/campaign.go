package domain

import "time"

// Campaign statuses as defined by the campaign service. The status field is
// server-owned; the client only displays it and asks the service to change it.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// CampaignStatuses lists the valid statuses in their display/cycle order.
var CampaignStatuses = []string{StatusDraft, StatusActive, StatusPaused, StatusCompleted}

// Campaign is a marketing campaign owned by the current user.
type Campaign struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Audience  string    `json:"audience"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is a status the campaign service accepts.
func ValidStatus(s string) bool {
	for _, v := range CampaignStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// NextStatus returns the status after s in cycle order, wrapping around.
// Unknown statuses restart the cycle at draft.
func NextStatus(s string) string {
	for i, v := range CampaignStatuses {
		if v == s {
			return CampaignStatuses[(i+1)%len(CampaignStatuses)]
		}
	}
	return StatusDraft
}
