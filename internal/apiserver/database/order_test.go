package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalogue(t *testing.T, db Database) []*FeedType {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, InitFeedTypes(ctx, db))
	types, err := db.ListFeedTypes(ctx, true)
	require.NoError(t, err)
	return types
}

func placeOrder(t *testing.T, db Database, farmerID, millID uint, lines ...OrderLine) *FeedOrder {
	t.Helper()
	o := &FeedOrder{OrderNumber: NewOrderNumber(time.Now()), FarmerID: farmerID, MillID: millID, DeliveryAddress: "Farm Road"}
	require.NoError(t, db.CreateOrder(context.Background(), o, lines))
	return o
}

func TestCreateOrder_PricesFromCatalogue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	mill := seedMill(t, db)

	o := placeOrder(t, db, farmer.ID, mill.ID,
		OrderLine{FeedTypeID: types[0].ID, Quantity: 10},
		OrderLine{FeedTypeID: types[2].ID, Quantity: 2.5},
	)
	assert.Equal(t, OrderPending, o.Status)
	assert.InDelta(t, 45*10+40*2.5, o.TotalAmount, 0.001)

	got, err := db.GetFarmerOrder(ctx, o.ID, farmer.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 45.0, got.Items[0].UnitPrice, 0.001)
	assert.InDelta(t, 450.0, got.Items[0].TotalPrice, 0.001)
}

func TestCreateOrder_Rejections(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	mill := seedMill(t, db)

	err := db.CreateOrder(ctx, &FeedOrder{OrderNumber: "ORD1", FarmerID: farmer.ID, MillID: mill.ID}, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	err = db.CreateOrder(ctx, &FeedOrder{OrderNumber: "ORD2", FarmerID: farmer.ID, MillID: mill.ID},
		[]OrderLine{{FeedTypeID: 999, Quantity: 1}})
	var unavailable *FeedTypeUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, uint(999), unavailable.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = db.CreateOrder(ctx, &FeedOrder{OrderNumber: "ORD3", FarmerID: farmer.ID, MillID: mill.ID},
		[]OrderLine{{FeedTypeID: types[0].ID, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = db.CreateOrder(ctx, &FeedOrder{OrderNumber: "ORD4", FarmerID: farmer.ID, MillID: 999},
		[]OrderLine{{FeedTypeID: types[0].ID, Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)

	orders, err := db.ListFarmerOrders(ctx, farmer.ID, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCancelOrder_OnlyPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	other := seedFarmer(t, db)
	mill := seedMill(t, db)
	o := placeOrder(t, db, farmer.ID, mill.ID, OrderLine{FeedTypeID: types[1].ID, Quantity: 1})

	_, err := db.CancelOrder(ctx, o.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, err := db.CancelOrder(ctx, o.ID, farmer.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderCancelled, cancelled.Status)

	_, err = db.CancelOrder(ctx, o.ID, farmer.ID)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	mill := seedMill(t, db)
	otherMill := seedMill(t, db)
	o := placeOrder(t, db, farmer.ID, mill.ID, OrderLine{FeedTypeID: types[1].ID, Quantity: 1})

	dispatched := OrderDispatched
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	_, err := db.UpdateOrderStatus(ctx, o.ID, otherMill.ID, OrderUpdate{Status: &dispatched, Now: now})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := db.UpdateOrderStatus(ctx, o.ID, mill.ID, OrderUpdate{Status: &dispatched, Now: now})
	require.NoError(t, err)
	assert.Equal(t, OrderDispatched, got.Status)
	require.NotNil(t, got.ActualDeliveryDate)
	assert.True(t, got.ActualDeliveryDate.Equal(now))

	bogus := OrderStatus("lost")
	_, err = db.UpdateOrderStatus(ctx, o.ID, mill.ID, OrderUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	delivered := OrderDelivered
	notes := "left at gate"
	got, err = db.UpdateOrderStatus(ctx, o.ID, mill.ID, OrderUpdate{Status: &delivered, Notes: &notes, Now: now})
	require.NoError(t, err)
	assert.Equal(t, "left at gate", got.Notes)

	_, err = db.UpdateOrderStatus(ctx, o.ID, mill.ID, OrderUpdate{Status: &dispatched, Now: now})
	assert.ErrorIs(t, err, ErrOrderClosed)

	pending := OrderPending
	list, err := db.ListMillOrders(ctx, mill.ID, pending)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = db.ListMillOrders(ctx, mill.ID, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteMill_DeactivatesWhenOrdersExist(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	types := seedCatalogue(t, db)
	farmer := seedFarmer(t, db)
	busy := seedMill(t, db)
	idle := seedMill(t, db)
	placeOrder(t, db, farmer.ID, busy.ID, OrderLine{FeedTypeID: types[0].ID, Quantity: 1})

	require.NoError(t, db.DeleteMill(ctx, busy.ID))
	m, err := db.GetMill(ctx, busy.ID)
	require.NoError(t, err)
	assert.False(t, m.IsActive)

	require.NoError(t, db.DeleteMill(ctx, idle.ID))
	_, err = db.GetMill(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
