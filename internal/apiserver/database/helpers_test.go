package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kumar-97/kukkuta-Kendra/internal/common/config"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

func newTestDB(t *testing.T) Database {
	t.Helper()
	db, err := NewSQLite(&config.DatabaseConfig{Type: "sqlite", DBName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedUser(t *testing.T, db Database, role UserRole) *User {
	t.Helper()
	n := seq.Add(1)
	u := &User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "hash",
		FullName: fmt.Sprintf("User %d", n),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func seedFarmer(t *testing.T, db Database) *Farmer {
	t.Helper()
	u := seedUser(t, db, RoleFarmer)
	f := &Farmer{UserID: u.ID, Phone: "9876543210", Address: "Farm Road", FarmType: "Broiler", ExperienceYears: 3}
	require.NoError(t, db.CreateFarmer(context.Background(), f))
	return f
}

func seedFarm(t *testing.T, db Database, farmerID uint) *Farm {
	t.Helper()
	farm := &Farm{FarmerID: farmerID, Name: "Shed A", Location: "Village", Capacity: 5000, FarmSize: 2.5, IsActive: true}
	require.NoError(t, db.CreateFarm(context.Background(), farm))
	return farm
}

func seedMill(t *testing.T, db Database) *Mill {
	t.Helper()
	u := seedUser(t, db, RoleMill)
	m := &Mill{UserID: u.ID, Name: "ABC Feeds", Address: "Industrial Area", Phone: "9555666777", CapacityPerDay: 10000, IsActive: true}
	require.NoError(t, db.CreateMill(context.Background(), m))
	return m
}

func seedReport(t *testing.T, db Database, farmerID uint) *ProductionReport {
	t.Helper()
	r := &ProductionReport{
		FarmerID:              farmerID,
		ReportNumber:          NewReportNumber(time.Now()),
		FarmerName:            "Farmer",
		Place:                 "Village",
		HatchDate:             time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalMortalityPercent: 4,
		ChicksHoused:          5000,
		FcrPercent:            1.6,
		AvgWeightKg:           2.1,
		LotGrade:              "A",
		CostDetails:           []CostDetail{{Item: "Chicks", Quantity: "5000", Rate: "35", Amount: 175000}},
	}
	require.NoError(t, db.CreateReport(context.Background(), r))
	return r
}
