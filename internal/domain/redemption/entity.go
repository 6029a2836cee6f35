package redemption

import "time"

// Status of a redemption
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Redemption records points spent on a benefit. PointsSpent is copied from
// the benefit at redemption time and never changes afterwards.
type Redemption struct {
	ID          int64     `db:"id"`
	VolunteerID int64     `db:"volunteer_id"`
	BenefitID   int64     `db:"benefit_id"`
	PointsSpent int       `db:"points_spent"`
	Status      Status    `db:"status"`
	RedeemedAt  time.Time `db:"redeemed_at"`

	// Joined from benefits on reads
	BenefitName string `db:"benefit_name"`
	Provider    string `db:"provider"`
}

// Result of a successful redemption
type Result struct {
	Redemption      *Redemption
	RemainingPoints int
}

// BenefitStats aggregates completed redemptions of one partner benefit
type BenefitStats struct {
	BenefitID       int64  `db:"benefit_id" json:"benefit_id"`
	Name            string `db:"name" json:"name"`
	Provider        string `db:"provider" json:"provider"`
	PointsRequired  int    `db:"points_required" json:"points_required"`
	Active          bool   `db:"active" json:"active"`
	RedemptionCount int    `db:"redemption_count" json:"redemption_count"`
	PointsRedeemed  int    `db:"points_redeemed" json:"points_redeemed"`
}

// RecentRedemption is one entry of the recent activity feed
type RecentRedemption struct {
	RedemptionID  int64     `db:"redemption_id" json:"redemption_id"`
	BenefitID     int64     `db:"benefit_id" json:"benefit_id"`
	BenefitName   string    `db:"benefit_name" json:"benefit_name"`
	VolunteerID   int64     `db:"volunteer_id" json:"volunteer_id"`
	VolunteerName string    `db:"volunteer_name" json:"volunteer_name"`
	PointsSpent   int       `db:"points_spent" json:"points_spent"`
	RedeemedAt    time.Time `db:"redeemed_at" json:"redeemed_at"`
}

// PartnerStats is the redemption report for providers matching a search term.
// It is serialized as-is into the stats cache.
type PartnerStats struct {
	Provider            string             `json:"provider"`
	TotalBenefits       int                `json:"total_benefits"`
	TotalRedemptions    int                `json:"total_redemptions"`
	TotalPointsRedeemed int                `json:"total_points_redeemed"`
	Benefits            []BenefitStats     `json:"benefits"`
	RecentRedemptions   []RecentRedemption `json:"recent_redemptions"`
}

// RecentLimit is how many recent redemptions a partner report includes.
const RecentLimit = 10

func newPartnerStats(provider string, benefits []BenefitStats, recent []RecentRedemption) *PartnerStats {
	stats := &PartnerStats{
		Provider:          provider,
		TotalBenefits:     len(benefits),
		Benefits:          benefits,
		RecentRedemptions: recent,
	}
	for _, b := range benefits {
		stats.TotalRedemptions += b.RedemptionCount
		stats.TotalPointsRedeemed += b.PointsRedeemed
	}
	if stats.RecentRedemptions == nil {
		stats.RecentRedemptions = []RecentRedemption{}
	}
	return stats
}
