package domain

import "time"

// Asset types recognized by the asset service.
const (
	AssetAdCopy      = "ad_copy"
	AssetLandingPage = "landing_page"
	AssetEmail       = "email"
	AssetSocialPost  = "social_post"
	AssetImage       = "image"
)

// AssetTypes lists the asset types in display/cycle order.
var AssetTypes = []string{AssetAdCopy, AssetLandingPage, AssetEmail, AssetSocialPost, AssetImage}

// Asset is a versioned piece of marketing content belonging to a campaign.
// Content always reflects the version named by CurrentVersion; the asset
// service owns the version counter and the client never computes it.
type Asset struct {
	ID             int64     `json:"id"`
	CampaignID     int64     `json:"campaign_id"`
	OwnerID        string    `json:"owner_id"`
	AssetType      string    `json:"asset_type"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CurrentVersion int       `json:"current_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AssetVersion is one historical snapshot of an asset's content.
type AssetVersion struct {
	ID            int64     `json:"id"`
	AssetID       int64     `json:"asset_id"`
	VersionNumber int       `json:"version_number"`
	Content       string    `json:"content"`
	ChangeNote    string    `json:"change_note"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidAssetType reports whether t is a type the asset service accepts.
func ValidAssetType(t string) bool {
	for _, v := range AssetTypes {
		if v == t {
			return true
		}
	}
	return false
}
