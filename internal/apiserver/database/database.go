package database

import (
	"context"
	"time"
)

// Database defines the methods for database operations.
type Database interface {
	UserStore
	FarmerStore
	MillStore
	OrderStore
	RoutineStore
	ReportStore
	AdminStore

	// Transaction runs fn inside one transaction. The transaction travels in
	// the context handed to fn, so every store call made with that context
	// joins it. A context that already carries a transaction is reused.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Migrate creates or updates the schema.
	Migrate(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]any) error
	UpdateUserPassword(ctx context.Context, id uint, hash string) error
	DeleteUser(ctx context.Context, id uint) error
}

// FarmerStore persists farmer profiles and their farms.
type FarmerStore interface {
	CreateFarmer(ctx context.Context, farmer *Farmer) error
	CreateFarmerWithUser(ctx context.Context, user *User, farmer *Farmer) error
	GetFarmer(ctx context.Context, id uint) (*Farmer, error)
	GetFarmerByUserID(ctx context.Context, userID uint) (*Farmer, error)
	GetFarmerSummary(ctx context.Context, id uint) (*FarmerSummary, error)
	ListFarmers(ctx context.Context, filter FarmerFilter) ([]*FarmerSummary, error)
	UpdateFarmer(ctx context.Context, id uint, updates map[string]any) error
	DeleteFarmer(ctx context.Context, id uint, deleteUser bool) error
	CountFarmers(ctx context.Context) (*FarmerCounts, error)
	SearchFarmers(ctx context.Context, query string, limit int) ([]*FarmerSearchResult, error)

	// BulkVerifyFarmers sets is_verified on every listed farmer in one
	// statement and returns the number of rows matched. Unknown ids are
	// skipped; an empty list fails with ErrInvalidArgument.
	BulkVerifyFarmers(ctx context.Context, ids []uint, verified bool) (int64, error)

	CreateFarm(ctx context.Context, farm *Farm) error
	ListFarms(ctx context.Context, farmerID uint) ([]*Farm, error)
	GetFarm(ctx context.Context, id, farmerID uint) (*Farm, error)
	UpdateFarm(ctx context.Context, id, farmerID uint, updates map[string]any) (*Farm, error)
	DeleteFarm(ctx context.Context, id, farmerID uint) error
}

// MillStore persists mills and the feed catalogue.
type MillStore interface {
	CreateMill(ctx context.Context, mill *Mill) error
	GetMill(ctx context.Context, id uint) (*Mill, error)
	GetMillByUserID(ctx context.Context, userID uint) (*Mill, error)
	ListMills(ctx context.Context, page Page) ([]*Mill, error)
	UpdateMill(ctx context.Context, id uint, updates map[string]any) (*Mill, error)
	DeleteMill(ctx context.Context, id uint) error

	CreateFeedType(ctx context.Context, feedType *FeedType) error
	ListFeedTypes(ctx context.Context, availableOnly bool) ([]*FeedType, error)
}

// OrderStore persists feed orders. Farmer and mill lookups are scoped to the
// owner in the same query.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *FeedOrder, lines []OrderLine) error
	ListFarmerOrders(ctx context.Context, farmerID uint, status OrderStatus) ([]*FeedOrder, error)
	GetFarmerOrder(ctx context.Context, id, farmerID uint) (*FeedOrder, error)
	CancelOrder(ctx context.Context, id, farmerID uint) (*FeedOrder, error)
	ListMillOrders(ctx context.Context, millID uint, status OrderStatus) ([]*FeedOrder, error)
	GetMillOrder(ctx context.Context, id, millID uint) (*FeedOrder, error)
	UpdateOrderStatus(ctx context.Context, id, millID uint, update OrderUpdate) (*FeedOrder, error)
}

// RoutineStore persists daily routine data and mortality records.
type RoutineStore interface {
	CreateRoutine(ctx context.Context, routine *RoutineData) error
	ListRoutines(ctx context.Context, filter RoutineFilter) ([]*RoutineData, error)
	GetRoutine(ctx context.Context, id, farmerID uint) (*RoutineData, error)
	UpdateRoutine(ctx context.Context, id, farmerID uint, updates map[string]any) (*RoutineData, error)
	DeleteRoutine(ctx context.Context, id, farmerID uint) (*RoutineData, error)

	CreateMortality(ctx context.Context, record *MortalityRecord) error
	ListMortality(ctx context.Context, farmerID uint, routineID *uint) ([]*MortalityRecord, error)
	UpdateMortality(ctx context.Context, id, farmerID uint, updates map[string]any) (*MortalityRecord, error)
	DeleteMortality(ctx context.Context, id, farmerID uint) (*MortalityRecord, error)
}

// ReportStore persists production reports and drives their approval
// lifecycle. Every transition is a conditional update guarded on the current
// approval flag.
type ReportStore interface {
	CreateReport(ctx context.Context, report *ProductionReport) error
	ListReports(ctx context.Context, filter ReportFilter) ([]*ProductionReport, error)
	GetReport(ctx context.Context, id uint) (*ProductionReport, error)
	GetFarmerReport(ctx context.Context, id, farmerID uint) (*ProductionReport, error)
	UpdateReport(ctx context.Context, id, farmerID uint, updates map[string]any) (*ProductionReport, error)
	DeleteReport(ctx context.Context, id, farmerID uint) error
	ApproveReport(ctx context.Context, id, adminID uint, at time.Time) (*ProductionReport, error)
	RejectReport(ctx context.Context, id uint) (*ProductionReport, error)

	AddCostDetail(ctx context.Context, farmerID uint, detail *CostDetail) error
	ListCostDetails(ctx context.Context, reportID, farmerID uint) ([]*CostDetail, error)
}

// AdminStore persists the admin action log and serves aggregate queries.
type AdminStore interface {
	CreateAdminLog(ctx context.Context, log *AdminLog) error
	ListAdminLogs(ctx context.Context, filter LogFilter) ([]*AdminLog, error)
	Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error)
	FarmerAnalytics(ctx context.Context, r DateRange) (*FarmerAnalytics, error)
	OrderAnalytics(ctx context.Context, r DateRange) (*OrderAnalytics, error)
	ProductionAnalytics(ctx context.Context, r DateRange) (*ProductionAnalytics, error)
	SystemStats(ctx context.Context, now time.Time) (*SystemStats, error)
}
