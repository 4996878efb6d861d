package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogs_Filter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	admin := seedUser(t, db, RoleAdmin)
	other := seedUser(t, db, RoleAdmin)
	target := uint(7)

	require.NoError(t, db.CreateAdminLog(ctx, &AdminLog{UserID: admin.ID, Action: "approve_report", TargetType: "production_report", TargetID: &target, Description: "approved"}))
	require.NoError(t, db.CreateAdminLog(ctx, &AdminLog{UserID: admin.ID, Action: "reject_report", Description: "rejected"}))
	require.NoError(t, db.CreateAdminLog(ctx, &AdminLog{UserID: other.ID, Action: "approve_report", Description: "approved"}))

	logs, err := db.ListAdminLogs(ctx, LogFilter{Action: "approve_report"})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = db.ListAdminLogs(ctx, LogFilter{UserID: &admin.ID})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "reject_report", logs[0].Action)

	logs, err = db.ListAdminLogs(ctx, LogFilter{Page: Page{Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestDashboardAndAnalytics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	seedFarmer(t, db)
	mill := seedMill(t, db)
	admin := seedUser(t, db, RoleAdmin)

	placeOrder(t, db, farmer.ID, mill.ID, OrderLine{FeedTypeID: types[0].ID, Quantity: 10})
	second := placeOrder(t, db, farmer.ID, mill.ID, OrderLine{FeedTypeID: types[2].ID, Quantity: 10})
	_, err := db.CancelOrder(ctx, second.ID, farmer.ID)
	require.NoError(t, err)

	r := seedReport(t, db, farmer.ID)
	seedReport(t, db, farmer.ID)
	_, err = db.ApproveReport(ctx, r.ID, admin.ID, time.Now())
	require.NoError(t, err)

	dash, err := db.Dashboard(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.TotalFarmers)
	assert.Equal(t, int64(1), dash.TotalMills)
	assert.Equal(t, int64(2), dash.TotalOrders)
	assert.Equal(t, int64(1), dash.PendingOrders)
	assert.Equal(t, int64(2), dash.TotalReports)
	assert.Equal(t, int64(1), dash.UnapprovedReports)
	assert.Equal(t, int64(2), dash.MonthlyOrders)
	assert.Len(t, dash.RecentOrders, 2)
	assert.Len(t, dash.RecentReports, 2)

	fa, err := db.FarmerAnalytics(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), fa.TotalFarmers)
	assert.Equal(t, int64(2), fa.FarmTypes["Broiler"])

	oa, err := db.OrderAnalytics(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), oa.TotalOrders)
	assert.Equal(t, int64(1), oa.StatusDistribution[OrderCancelled])
	assert.InDelta(t, 850.0, oa.TotalRevenue, 0.001)
	assert.InDelta(t, 425.0, oa.AverageOrderValue, 0.001)

	pa, err := db.ProductionAnalytics(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), pa.TotalReports)
	assert.Equal(t, int64(1), pa.ApprovedReports)
	assert.InDelta(t, 50.0, pa.ApprovalRate, 0.001)
	assert.InDelta(t, 1.6, pa.AverageFCR, 0.001)

	future := time.Now().Add(48 * time.Hour)
	empty, err := db.ProductionAnalytics(ctx, DateRange{Start: &future})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalReports)
	assert.Zero(t, empty.ApprovalRate)

	sys, err := db.SystemStats(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), sys.Users.Total)
	assert.Equal(t, int64(4), sys.Users.Recent)
	assert.Equal(t, int64(2), sys.Activity.RecentOrders)
}

func TestInitSuperAdmin_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := InitSuperAdmin(ctx, db, "Admin@Example.com", "hash", "Root")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = InitSuperAdmin(ctx, db, "admin@example.com", "hash", "Root")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := db.GetUserByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.IsActive)
}

func TestInitFeedTypes_OnlyWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, InitFeedTypes(ctx, db))
	require.NoError(t, InitFeedTypes(ctx, db))
	types, err := db.ListFeedTypes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, types, len(DefaultFeedTypes))

	require.NoError(t, db.CreateFeedType(ctx, &FeedType{Name: "Layer Mash", PricePerKg: 30}))
	available, err := db.ListFeedTypes(ctx, true)
	require.NoError(t, err)
	assert.Len(t, available, len(DefaultFeedTypes))

	err = db.CreateFeedType(ctx, &FeedType{Name: "Starter", PricePerKg: 1})
	assert.ErrorIs(t, err, ErrConflict)
}
