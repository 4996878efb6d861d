package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateRoutine_FarmMustBeOwned(t *testing.T) {
	db := newTestDB(t)
	owner := seedFarmer(t, db)
	other := seedFarmer(t, db)
	farm := seedFarm(t, db, owner.ID)

	err := db.CreateRoutine(context.Background(), &RoutineData{FarmerID: other.ID, FarmID: farm.ID, Date: day(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRoutine_OnePerFarmAndDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedFarmer(t, db)
	farm := seedFarm(t, db, f.ID)

	require.NoError(t, db.CreateRoutine(ctx, &RoutineData{FarmerID: f.ID, FarmID: farm.ID, Date: day(1), FeedConsumptionKg: 50}))
	err := db.CreateRoutine(ctx, &RoutineData{FarmerID: f.ID, FarmID: farm.ID, Date: day(1)})
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, db.CreateRoutine(ctx, &RoutineData{FarmerID: f.ID, FarmID: farm.ID, Date: day(2)}))

	start, end := day(2), day(2)
	list, err := db.ListRoutines(ctx, RoutineFilter{FarmerID: f.ID, DateRange: DateRange{Start: &start, End: &end}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Date.Equal(day(2)))

	list, err = db.ListRoutines(ctx, RoutineFilter{FarmerID: f.ID, FarmID: &farm.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.After(list[1].Date))
}

func TestMortality_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedFarmer(t, db)
	other := seedFarmer(t, db)
	farm := seedFarm(t, db, f.ID)
	routine := &RoutineData{FarmerID: f.ID, FarmID: farm.ID, Date: day(3)}
	require.NoError(t, db.CreateRoutine(ctx, routine))

	err := db.CreateMortality(ctx, &MortalityRecord{RoutineDataID: routine.ID, FarmerID: other.ID, Count: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	rec := &MortalityRecord{RoutineDataID: routine.ID, FarmerID: f.ID, Count: 3, Cause: "heat", PhotoURL: "/uploads/mortality/a.png"}
	require.NoError(t, db.CreateMortality(ctx, rec))

	got, err := db.GetRoutine(ctx, routine.ID, f.ID)
	require.NoError(t, err)
	require.Len(t, got.MortalityRecords, 1)
	assert.Equal(t, "/uploads/mortality/a.png", got.MortalityRecords[0].PhotoURL)

	updated, err := db.UpdateMortality(ctx, rec.ID, f.ID, map[string]any{"count": 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Count)
	_, err = db.UpdateMortality(ctx, rec.ID, other.ID, map[string]any{"count": 9})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := db.ListMortality(ctx, f.ID, &routine.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = db.DeleteMortality(ctx, rec.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	removed, err := db.DeleteRoutine(ctx, routine.ID, f.ID)
	require.NoError(t, err)
	require.Len(t, removed.MortalityRecords, 1)
	assert.Equal(t, "/uploads/mortality/a.png", removed.MortalityRecords[0].PhotoURL)
	_, err = db.DeleteRoutine(ctx, routine.ID, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err = db.ListMortality(ctx, f.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
