package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkVerifyFarmers_SkipsUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedFarmer(t, db)
	b := seedFarmer(t, db)
	c := seedFarmer(t, db)

	n, err := db.BulkVerifyFarmers(ctx, []uint{a.ID, b.ID, 999}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for id, want := range map[uint]bool{a.ID: true, b.ID: true, c.ID: false} {
		f, err := db.GetFarmer(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, f.IsVerified, "farmer %d", id)
	}

	n, err = db.BulkVerifyFarmers(ctx, []uint{a.ID}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBulkVerifyFarmers_EmptyRejected(t *testing.T) {
	db := newTestDB(t)
	_, err := db.BulkVerifyFarmers(context.Background(), nil, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBulkVerifyFarmers_RollsBackWithEnclosingTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedFarmer(t, db)

	err := db.Transaction(ctx, func(ctx context.Context) error {
		if _, err := db.BulkVerifyFarmers(ctx, []uint{a.ID}, true); err != nil {
			return err
		}
		return ErrInvalidState
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	f, err := db.GetFarmer(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, f.IsVerified)
}

func TestCreateFarmer_OneProfilePerUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedFarmer(t, db)

	err := db.CreateFarmer(ctx, &Farmer{UserID: f.UserID, Phone: "1", Address: "a", FarmType: "Layer"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateFarmerWithUser_RollsBackOnDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	existing := seedUser(t, db, RoleFarmer)

	err := db.CreateFarmerWithUser(ctx,
		&User{Email: existing.Email, Password: "x", FullName: "Dup", Role: RoleFarmer, IsActive: true},
		&Farmer{Phone: "1", Address: "a", FarmType: "Broiler"})
	assert.ErrorIs(t, err, ErrConflict)

	counts, err := db.CountFarmers(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.TotalFarmers)
}

func TestFarmerSummariesAndSearch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedFarmer(t, db)
	seedFarm(t, db, f.ID)
	seedFarm(t, db, f.ID)
	seedFarmer(t, db)

	summary, err := db.GetFarmerSummary(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.FarmCount)
	assert.True(t, summary.UserIsActive)
	assert.NotEmpty(t, summary.UserEmail)

	user, err := db.GetUserByID(ctx, f.UserID)
	require.NoError(t, err)
	list, err := db.ListFarmers(ctx, FarmerFilter{Search: user.FullName})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.ID, list[0].ID)

	verified := true
	list, err = db.ListFarmers(ctx, FarmerFilter{Verified: &verified})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = db.ListFarmers(ctx, FarmerFilter{FarmType: "broil", Page: Page{Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	hits, err := db.SearchFarmers(ctx, "EXAMPLE.COM", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	_, err = db.GetFarmerSummary(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountFarmers(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedFarmer(t, db)
	b := seedFarmer(t, db)
	_, err := db.BulkVerifyFarmers(ctx, []uint{a.ID}, true)
	require.NoError(t, err)
	require.NoError(t, db.UpdateUser(ctx, b.UserID, map[string]any{"is_active": false}))

	counts, err := db.CountFarmers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.TotalFarmers)
	assert.Equal(t, int64(1), counts.VerifiedFarmers)
	assert.Equal(t, int64(1), counts.UnverifiedFarmers)
	assert.Equal(t, int64(1), counts.InactiveUsers)
	assert.InDelta(t, 50.0, counts.VerificationRate, 0.001)
	assert.Equal(t, int64(2), counts.FarmTypeDistribution["Broiler"])
}

func TestDeleteFarmer_Cascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedFarmer(t, db)
	farm := seedFarm(t, db, f.ID)
	seedReport(t, db, f.ID)
	routine := &RoutineData{FarmerID: f.ID, FarmID: farm.ID, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), FeedConsumptionKg: 10, AverageBirdWeightG: 100}
	require.NoError(t, db.CreateRoutine(ctx, routine))
	require.NoError(t, db.CreateMortality(ctx, &MortalityRecord{RoutineDataID: routine.ID, FarmerID: f.ID, Count: 2}))

	require.NoError(t, db.DeleteFarmer(ctx, f.ID, true))

	_, err := db.GetFarmer(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetUserByID(ctx, f.UserID)
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := db.SystemStats(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.Data.RoutineRecords)
	assert.Zero(t, stats.Data.MortalityRecords)
	assert.Zero(t, stats.Data.ProductionReports)
	assert.Zero(t, stats.Data.CostDetails)

	assert.ErrorIs(t, db.DeleteFarmer(ctx, f.ID, false), ErrNotFound)
}

func TestFarms_Ownership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedFarmer(t, db)
	other := seedFarmer(t, db)
	farm := seedFarm(t, db, owner.ID)

	_, err := db.GetFarm(ctx, farm.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = db.UpdateFarm(ctx, farm.ID, other.ID, map[string]any{"name": "stolen"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteFarm(ctx, farm.ID, other.ID), ErrNotFound)

	updated, err := db.UpdateFarm(ctx, farm.ID, owner.ID, map[string]any{"current_stock": 4200})
	require.NoError(t, err)
	assert.Equal(t, 4200, updated.CurrentStock)

	farms, err := db.ListFarms(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, farms, 1)

	require.NoError(t, db.DeleteFarm(ctx, farm.ID, owner.ID))
	farms, err = db.ListFarms(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, farms)
}
