package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Page is an offset window over a result set
type Page struct {
	Skip  int
	Limit int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Skip > 0 {
		db = db.Offset(p.Skip)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}

// DateRange bounds a query on a timestamp column; zero ends are open
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) apply(db *gorm.DB, column string) *gorm.DB {
	if r.Start != nil {
		db = db.Where(column+" >= ?", *r.Start)
	}
	if r.End != nil {
		db = db.Where(column+" <= ?", *r.End)
	}
	return db
}

// FarmerFilter narrows the admin farmer listing
type FarmerFilter struct {
	Page
	Search   string
	FarmType string
	Verified *bool
}

// FarmerSummary is a farmer joined with its account and farm count
type FarmerSummary struct {
	Farmer
	UserEmail    string `json:"user_email"`
	UserFullName string `json:"user_full_name"`
	UserIsActive bool   `json:"user_is_active"`
	FarmCount    int64  `json:"farm_count"`
}

// FarmerCounts aggregates the farmer population
type FarmerCounts struct {
	TotalFarmers         int64            `json:"total_farmers"`
	VerifiedFarmers      int64            `json:"verified_farmers"`
	UnverifiedFarmers    int64            `json:"unverified_farmers"`
	ActiveUsers          int64            `json:"active_users"`
	InactiveUsers        int64            `json:"inactive_users"`
	VerificationRate     float64          `json:"verification_rate"`
	FarmTypeDistribution map[string]int64 `json:"farm_type_distribution"`
}

// FarmerSearchResult is one hit of the quick farmer search
type FarmerSearchResult struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	FarmType   string `json:"farm_type"`
	IsVerified bool   `json:"is_verified"`
}

// OrderLine asks for a quantity of one feed type
type OrderLine struct {
	FeedTypeID uint
	Quantity   float64
}

// OrderUpdate carries the fields a mill may change on an order
type OrderUpdate struct {
	Status             *OrderStatus
	ActualDeliveryDate *time.Time
	Notes              *string
	Now                time.Time
}

// RoutineFilter narrows a farmer's routine listing
type RoutineFilter struct {
	Page
	DateRange
	FarmerID uint
	FarmID   *uint
}

// ReportFilter narrows a report listing. FarmerID is required for farmer
// scoped listings and optional for admins.
type ReportFilter struct {
	Page
	DateRange
	FarmerID *uint
	Approved *bool
	WithCost bool
}

// LogFilter narrows the admin log listing
type LogFilter struct {
	Page
	Action string
	UserID *uint
}

// likePattern builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
