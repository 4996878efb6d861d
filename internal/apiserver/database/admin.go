package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	recentActivityLimit = 5
	recentWindow        = 7 * 24 * time.Hour
)

func (s *store) CreateAdminLog(ctx context.Context, log *AdminLog) error {
	return translate(s.conn(ctx).Create(log).Error)
}

func (s *store) ListAdminLogs(ctx context.Context, filter LogFilter) ([]*AdminLog, error) {
	q := s.conn(ctx)
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	var logs []*AdminLog
	if err := filter.Page.apply(q.Order("created_at desc, id desc")).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// counter runs a list of counts, stopping at the first error
type counter struct {
	db  *gorm.DB
	err error
}

func (c *counter) count(dst *int64, model any, query string, args ...any) {
	if c.err != nil {
		return
	}
	q := c.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	c.err = q.Count(dst).Error
}

func (s *store) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{RecentOrders: []*RecentOrder{}, RecentReports: []*RecentReport{}}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	c := &counter{db: s.conn(ctx)}
	c.count(&stats.TotalFarmers, &Farmer{}, "")
	c.count(&stats.TotalMills, &Mill{}, "")
	c.count(&stats.TotalOrders, &FeedOrder{}, "")
	c.count(&stats.TotalReports, &ProductionReport{}, "")
	c.count(&stats.PendingOrders, &FeedOrder{}, "status = ?", OrderPending)
	c.count(&stats.UnapprovedReports, &ProductionReport{}, "is_approved = ?", false)
	c.count(&stats.MonthlyOrders, &FeedOrder{}, "created_at >= ?", monthStart)
	c.count(&stats.MonthlyReports, &ProductionReport{}, "created_at >= ?", monthStart)
	if c.err != nil {
		return nil, c.err
	}

	db := s.conn(ctx)
	err := db.Model(&FeedOrder{}).
		Select("id, order_number, farmer_id, status, total_amount, created_at").
		Order("created_at desc, id desc").Limit(recentActivityLimit).
		Scan(&stats.RecentOrders).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&ProductionReport{}).
		Select("id, report_number, farmer_name, is_approved, created_at").
		Order("created_at desc, id desc").Limit(recentActivityLimit).
		Scan(&stats.RecentReports).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *store) FarmerAnalytics(ctx context.Context, r DateRange) (*FarmerAnalytics, error) {
	base := func() *gorm.DB { return r.apply(s.conn(ctx).Model(&Farmer{}), "created_at") }

	out := &FarmerAnalytics{FarmTypes: map[string]int64{}}
	if err := base().Count(&out.TotalFarmers).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_verified = ?", true).Count(&out.VerifiedFarmers).Error; err != nil {
		return nil, err
	}
	var groups []struct {
		FarmType string
		Count    int64
	}
	if err := base().Select("farm_type, COUNT(*) AS count").Group("farm_type").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		out.FarmTypes[g.FarmType] = g.Count
	}
	out.UnverifiedFarmers = out.TotalFarmers - out.VerifiedFarmers
	out.VerificationRate = percent(out.VerifiedFarmers, out.TotalFarmers)
	return out, nil
}

func (s *store) OrderAnalytics(ctx context.Context, r DateRange) (*OrderAnalytics, error) {
	var groups []struct {
		Status  OrderStatus
		Count   int64
		Revenue float64
	}
	err := r.apply(s.conn(ctx).Model(&FeedOrder{}), "created_at").
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("status").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	out := &OrderAnalytics{StatusDistribution: map[OrderStatus]int64{}}
	for _, g := range groups {
		out.StatusDistribution[g.Status] = g.Count
		out.TotalOrders += g.Count
		out.TotalRevenue += g.Revenue
	}
	if out.TotalOrders > 0 {
		out.AverageOrderValue = out.TotalRevenue / float64(out.TotalOrders)
	}
	return out, nil
}

func (s *store) ProductionAnalytics(ctx context.Context, r DateRange) (*ProductionAnalytics, error) {
	var row struct {
		Total     int64
		Approved  int64
		Mortality float64
		Fcr       float64
		Weight    float64
	}
	err := r.apply(s.conn(ctx).Model(&ProductionReport{}), "hatch_date").
		Select("COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_approved THEN 1 ELSE 0 END), 0) AS approved, " +
			"COALESCE(AVG(total_mortality_percent), 0) AS mortality, " +
			"COALESCE(AVG(fcr_percent), 0) AS fcr, " +
			"COALESCE(AVG(avg_weight_kg), 0) AS weight").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ProductionAnalytics{
		TotalReports:     row.Total,
		ApprovedReports:  row.Approved,
		ApprovalRate:     percent(row.Approved, row.Total),
		AverageMortality: row.Mortality,
		AverageFCR:       row.Fcr,
		AverageWeight:    row.Weight,
	}, nil
}

func (s *store) SystemStats(ctx context.Context, now time.Time) (*SystemStats, error) {
	stats := &SystemStats{}
	since := now.Add(-recentWindow)

	c := &counter{db: s.conn(ctx)}
	c.count(&stats.Users.Total, &User{}, "")
	c.count(&stats.Users.Active, &User{}, "is_active = ?", true)
	c.count(&stats.Users.Recent, &User{}, "created_at >= ?", since)
	c.count(&stats.Data.RoutineRecords, &RoutineData{}, "")
	c.count(&stats.Data.MortalityRecords, &MortalityRecord{}, "")
	c.count(&stats.Data.ProductionReports, &ProductionReport{}, "")
	c.count(&stats.Data.CostDetails, &CostDetail{}, "")
	c.count(&stats.Activity.RecentOrders, &FeedOrder{}, "created_at >= ?", since)
	c.count(&stats.Activity.RecentReports, &ProductionReport{}, "created_at >= ?", since)
	if c.err != nil {
		return nil, c.err
	}
	return stats, nil
}
