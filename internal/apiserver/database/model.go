package database

import "time"

// UserRole represents the role of a user
type UserRole string

const (
	RoleFarmer UserRole = "farmer"
	RoleMill   UserRole = "mill"
	RoleAdmin  UserRole = "admin"
	RoleReport UserRole = "report"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleFarmer, RoleMill, RoleAdmin, RoleReport:
		return true
	}
	return false
}

// OrderStatus is the state of a feed order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order states
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDispatched, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Closed reports whether an order in this state can no longer change
func (s OrderStatus) Closed() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// User is an account of any role
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email      string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"not null"`
	FullName   string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Role       UserRole  `json:"role" gorm:"type:varchar(20);not null;index"`
	IsActive   bool      `json:"is_active" gorm:"not null"`
	IsVerified bool      `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Farmer is the profile of a user with the farmer role
type Farmer struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Phone           string    `json:"phone" gorm:"type:varchar(15);not null"`
	Address         string    `json:"address" gorm:"type:text;not null"`
	FarmType        string    `json:"farm_type" gorm:"type:varchar(50);not null;index"`
	ExperienceYears int       `json:"experience_years" gorm:"not null;default:0"`
	IsVerified      bool      `json:"is_verified" gorm:"not null;default:false;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Farms []Farm `json:"farms,omitempty" gorm:"foreignKey:FarmerID"`
}

// Farm belongs to exactly one farmer
type Farm struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FarmerID     uint      `json:"farmer_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Location     string    `json:"location" gorm:"type:varchar(200);not null"`
	Capacity     int       `json:"capacity" gorm:"not null"`
	CurrentStock int       `json:"current_stock" gorm:"not null;default:0"`
	FarmSize     float64   `json:"farm_size" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Mill is the profile of a user with the mill role
type Mill struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name" gorm:"type:varchar(100);not null"`
	Address        string    `json:"address" gorm:"type:text;not null"`
	Phone          string    `json:"phone" gorm:"type:varchar(15);not null"`
	CapacityPerDay float64   `json:"capacity_per_day" gorm:"not null"`
	IsActive       bool      `json:"is_active" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FeedType is a product that can be ordered from a mill
type FeedType struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PricePerKg  float64   `json:"price_per_kg" gorm:"not null"`
	IsAvailable bool      `json:"is_available" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FeedOrder is placed by a farmer with one mill
type FeedOrder struct {
	ID                   uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber          string      `json:"order_number" gorm:"type:varchar(32);uniqueIndex;not null"`
	FarmerID             uint        `json:"farmer_id" gorm:"not null;index"`
	MillID               uint        `json:"mill_id" gorm:"not null;index"`
	Status               OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount          float64     `json:"total_amount" gorm:"not null"`
	DeliveryAddress      string      `json:"delivery_address" gorm:"type:text;not null"`
	ExpectedDeliveryDate *time.Time  `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time  `json:"actual_delivery_date"`
	Notes                string      `json:"notes" gorm:"type:text"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`

	Items []FeedOrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// FeedOrderItem is one priced line of an order
type FeedOrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	FeedTypeID uint      `json:"feed_type_id" gorm:"not null"`
	Quantity   float64   `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoutineData is the daily husbandry log of one farm
type RoutineData struct {
	ID                     uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FarmerID               uint      `json:"farmer_id" gorm:"not null;index"`
	FarmID                 uint      `json:"farm_id" gorm:"not null;uniqueIndex:idx_routine_farm_date"`
	Date                   time.Time `json:"date" gorm:"not null;uniqueIndex:idx_routine_farm_date"`
	MortalityCount         int       `json:"mortality_count" gorm:"not null;default:0"`
	FeedConsumptionKg      float64   `json:"feed_consumption_kg" gorm:"not null"`
	AverageBirdWeightG     float64   `json:"average_bird_weight_g" gorm:"not null"`
	WaterConsumptionLiters *float64  `json:"water_consumption_liters"`
	TemperatureCelsius     *float64  `json:"temperature_celsius"`
	HumidityPercentage     *float64  `json:"humidity_percentage"`
	Notes                  string    `json:"notes" gorm:"type:text"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	MortalityRecords []MortalityRecord `json:"mortality_records,omitempty" gorm:"foreignKey:RoutineDataID"`
}

// MortalityRecord details deaths logged against a routine entry
type MortalityRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RoutineDataID uint      `json:"routine_data_id" gorm:"not null;index"`
	FarmerID      uint      `json:"farmer_id" gorm:"not null;index"`
	Count         int       `json:"count" gorm:"not null"`
	Cause         string    `json:"cause" gorm:"type:varchar(100)"`
	AgeDays       *int      `json:"age_days"`
	PhotoURL      string    `json:"photo_url" gorm:"type:varchar(500)"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductionReport summarises one flock. Draft while Approved is false;
// ApprovedBy and ApprovedAt are set exactly when Approved is true.
type ProductionReport struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FarmerID     uint      `json:"farmer_id" gorm:"not null;index"`
	ReportNumber string    `json:"report_number" gorm:"type:varchar(20);uniqueIndex;not null"`
	FarmerName   string    `json:"farmer_name" gorm:"type:varchar(100);not null"`
	Place        string    `json:"place" gorm:"type:varchar(200);not null"`
	HatchDate    time.Time `json:"hatch_date" gorm:"not null;index"`

	TotalMortalityPercent float64 `json:"total_mortality_percent"`
	ChicksHoused          int     `json:"chicks_housed"`
	MortalityNos          int     `json:"mortality_nos"`
	BirdLifted            int     `json:"bird_lifted"`
	Shortage              int     `json:"shortage"`
	BirdWeightKg          float64 `json:"bird_weight_kg"`

	FcrPercent     float64  `json:"fcr_percent"`
	LiftingPercent float64  `json:"lifting_percent"`
	AvgWeightKg    float64  `json:"avg_weight_kg"`
	MeanAgeDays    *int     `json:"mean_age_days"`
	FarmerProfitKg *float64 `json:"farmer_profit_kg"`
	MspKg          *float64 `json:"msp_kg"`
	LotGrade       string   `json:"lot_grade" gorm:"type:varchar(10);not null"`

	ProductionCostPerKg  float64  `json:"production_cost_per_kg"`
	BasicRate            float64  `json:"basic_rate"`
	PerformanceBonus     string   `json:"performance_bonus" gorm:"type:varchar(100)"`
	Balance              *float64 `json:"balance"`
	ShortingBirdKg       string   `json:"shorting_bird_kg" gorm:"type:varchar(100)"`
	ExtraMortality       string   `json:"extra_mortality" gorm:"type:varchar(100)"`
	MinimumGrowingCharge string   `json:"minimum_growing_charge" gorm:"type:varchar(100)"`
	FinalAmount          float64  `json:"final_amount"`

	Approved   bool       `json:"is_approved" gorm:"column:is_approved;not null;default:false;index"`
	ApprovedBy *uint      `json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	CostDetails []CostDetail `json:"cost_details" gorm:"foreignKey:ProductionReportID"`
}

// CostDetail is one cost line of a production report
type CostDetail struct {
	ID                 uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductionReportID uint      `json:"production_report_id" gorm:"not null;index"`
	Item               string    `json:"item" gorm:"type:varchar(100);not null"`
	Quantity           string    `json:"quantity" gorm:"type:varchar(50)"`
	Rate               string    `json:"rate" gorm:"type:varchar(50)"`
	Amount             float64   `json:"amount" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at"`
}

// AdminLog records one administrative action
type AdminLog struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Action      string    `json:"action" gorm:"type:varchar(50);not null;index"`
	TargetType  string    `json:"target_type" gorm:"type:varchar(50)"`
	TargetID    *uint     `json:"target_id"`
	Description string    `json:"description" gorm:"type:text;not null"`
	IPAddress   string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent   string    `json:"user_agent" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// allModels is the AutoMigrate set, parents first
var allModels = []any{
	&User{}, &Farmer{}, &Farm{}, &Mill{}, &FeedType{},
	&FeedOrder{}, &FeedOrderItem{}, &RoutineData{}, &MortalityRecord{},
	&ProductionReport{}, &CostDetail{}, &AdminLog{},
}
