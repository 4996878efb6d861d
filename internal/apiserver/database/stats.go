package database

import "time"

type (
	// DashboardStats is the admin landing page summary
	DashboardStats struct {
		TotalFarmers      int64           `json:"total_farmers"`
		TotalMills        int64           `json:"total_mills"`
		TotalOrders       int64           `json:"total_orders"`
		TotalReports      int64           `json:"total_reports"`
		PendingOrders     int64           `json:"pending_orders"`
		UnapprovedReports int64           `json:"unapproved_reports"`
		MonthlyOrders     int64           `json:"monthly_orders"`
		MonthlyReports    int64           `json:"monthly_reports"`
		RecentOrders      []*RecentOrder  `json:"recent_orders"`
		RecentReports     []*RecentReport `json:"recent_reports"`
	}

	RecentOrder struct {
		ID          uint        `json:"id"`
		OrderNumber string      `json:"order_number"`
		FarmerID    uint        `json:"farmer_id"`
		Status      OrderStatus `json:"status"`
		TotalAmount float64     `json:"total_amount"`
		CreatedAt   time.Time   `json:"created_at"`
	}

	RecentReport struct {
		ID           uint      `json:"id"`
		ReportNumber string    `json:"report_number"`
		FarmerName   string    `json:"farmer_name"`
		Approved     bool      `json:"is_approved" gorm:"column:is_approved"`
		CreatedAt    time.Time `json:"created_at"`
	}

	FarmerAnalytics struct {
		TotalFarmers      int64            `json:"total_farmers"`
		FarmTypes         map[string]int64 `json:"farm_types"`
		VerifiedFarmers   int64            `json:"verified_farmers"`
		UnverifiedFarmers int64            `json:"unverified_farmers"`
		VerificationRate  float64          `json:"verification_rate"`
	}

	OrderAnalytics struct {
		TotalOrders        int64                 `json:"total_orders"`
		StatusDistribution map[OrderStatus]int64 `json:"status_distribution"`
		TotalRevenue       float64               `json:"total_revenue"`
		AverageOrderValue  float64               `json:"average_order_value"`
	}

	ProductionAnalytics struct {
		TotalReports     int64   `json:"total_reports"`
		ApprovedReports  int64   `json:"approved_reports"`
		ApprovalRate     float64 `json:"approval_rate"`
		AverageMortality float64 `json:"average_mortality"`
		AverageFCR       float64 `json:"average_fcr"`
		AverageWeight    float64 `json:"average_weight"`
	}

	SystemStats struct {
		Users struct {
			Total  int64 `json:"total"`
			Active int64 `json:"active"`
			Recent int64 `json:"recent"`
		} `json:"users"`
		Data struct {
			RoutineRecords    int64 `json:"routine_records"`
			MortalityRecords  int64 `json:"mortality_records"`
			ProductionReports int64 `json:"production_reports"`
			CostDetails       int64 `json:"cost_details"`
		} `json:"data"`
		Activity struct {
			RecentOrders  int64 `json:"recent_orders"`
			RecentReports int64 `json:"recent_reports"`
		} `json:"activity"`
	}
)
