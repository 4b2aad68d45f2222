package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"local_delivery/internal/models"
	"local_delivery/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace_StandardOrder(t *testing.T) {
	f := newFixture(t, true)

	order, err := f.orders.Place(f.ctx, f.customer, f.standardRequest())
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, models.OrderPlaced, order.Status)
	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 12.5, order.Taxes)
	assert.Equal(t, 40.0, order.DeliveryFee)
	assert.Equal(t, 302.5, order.Total)
	assert.Equal(t, f.customer.ID, order.UserID)
	assert.Equal(t, f.restaurant.ID, order.RestaurantID)
	assert.True(t, order.OrderDate.Equal(f.clock.t))
	assert.True(t, order.StatusUpdatedAt.Equal(f.clock.t))
	assert.Nil(t, order.CancelledBy)
	assert.Nil(t, order.CancellationReason)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Paneer Tikka", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 200.0, order.Items[0].TotalPrice)

	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, "somewhere", *order.DeliveryAddress)

	history, err := f.orders.History(f.ctx, f.customer, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.OrderPlaced, history[0].ToStatus)
}

func TestPlace_TotalOnly(t *testing.T) {
	f := newFixture(t, true)
	req := f.standardRequest()
	req.Subtotal, req.Taxes, req.DeliveryFee = nil, nil, nil

	order, err := f.orders.Place(f.ctx, f.customer, req)
	require.NoError(t, err)
	assert.Equal(t, 302.5, order.Total)
}

func TestPlace_MenuPriceIsAuthoritative(t *testing.T) {
	f := newFixture(t, true)
	req := f.standardRequest()
	req.Items[0].Price = 1
	req.Items[0].Name = "Free Paneer"

	order, err := f.orders.Place(f.ctx, f.customer, req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.Items[0].UnitPrice)
	assert.Equal(t, "Paneer Tikka", order.Items[0].Name)
}

func TestPlace_Rejections(t *testing.T) {
	f := newFixture(t, true)

	cases := []struct {
		name   string
		actor  *models.Actor
		mutate func(*PlaceOrderRequest)
		want   error
	}{
		{"no actor", nil, func(*PlaceOrderRequest) {}, ErrUnauthenticated},
		{"restaurant role", f.owner, func(*PlaceOrderRequest) {}, ErrAccessDenied},
		{"no items", f.customer, func(r *PlaceOrderRequest) { r.Items = nil }, ErrValidation},
		{"no total", f.customer, func(r *PlaceOrderRequest) { r.Total = nil }, ErrValidation},
		{"zero total", f.customer, func(r *PlaceOrderRequest) { r.Total = f64(0) }, ErrValidation},
		{"no restaurant", f.customer, func(r *PlaceOrderRequest) { r.RestaurantID = 0 }, ErrValidation},
		{"zero quantity", f.customer, func(r *PlaceOrderRequest) { r.Items[0].Quantity = 0 }, ErrValidation},
		{"duplicate item", f.customer, func(r *PlaceOrderRequest) { r.Items[1].MenuItemID = r.Items[0].MenuItemID }, ErrValidation},
		{"total mismatch", f.customer, func(r *PlaceOrderRequest) { r.Total = f64(250) }, ErrValidation},
		{"taxes mismatch", f.customer, func(r *PlaceOrderRequest) { r.Taxes = f64(0) }, ErrValidation},
		{"unavailable item", f.customer, func(r *PlaceOrderRequest) { r.Items[0].MenuItemID = f.soldOut.ID }, ErrValidation},
		{"item from another restaurant", f.customer, func(r *PlaceOrderRequest) { r.Items[0].MenuItemID = f.farDish.ID }, ErrValidation},
		{"unknown restaurant", f.customer, func(r *PlaceOrderRequest) { r.RestaurantID = 9999 }, ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.standardRequest()
			tc.mutate(&req)
			_, err := f.orders.Place(f.ctx, tc.actor, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	orders, err := f.orders.ListForUser(f.ctx, f.customer)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func farRequest(f *fixture) PlaceOrderRequest {
	return PlaceOrderRequest{
		RestaurantID: f.farRestaurant.ID,
		Items:        []OrderItemRequest{{MenuItemID: f.farDish.ID, Quantity: 1}},
		Total:        f64(197.5),
	}
}

func TestPlace_OutOfDeliveryRange(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.orders.Place(f.ctx, f.customer, farRequest(f))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, MessageOf(err), "We only deliver within 5 km")
}

func TestPlace_RangeNotEnforced(t *testing.T) {
	f := newFixture(t, false)

	order, err := f.orders.Place(f.ctx, f.customer, farRequest(f))
	require.NoError(t, err)
	assert.Equal(t, 150.0, order.Subtotal)
	assert.Equal(t, 7.5, order.Taxes)
	assert.Equal(t, 197.5, order.Total)
}

func TestPlace_UserWithoutLocation(t *testing.T) {
	f := newFixture(t, true)
	nowhere := f.addUser(t, "nomad@example.com", models.RoleUser, models.Location{})

	_, err := f.orders.Place(f.ctx, nowhere, f.standardRequest())
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, MessageOf(err), "delivery location")
}

func TestPlace_PricingSettingsOverrideDefaults(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.settingsRepo.UpsertSettings(f.ctx, &models.PricingSetting{SettingName: models.SettingDeliveryFee, Value: 0, IsActive: true}))

	req := f.standardRequest()
	req.DeliveryFee = nil
	req.Total = f64(262.5)

	order, err := f.orders.Place(f.ctx, f.customer, req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 262.5, order.Total)
}

func TestAdvanceStatus_OwnerConfirms(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)
	placedAt := order.StatusUpdatedAt

	f.clock.Advance(3 * time.Minute)
	updated, err := f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderConfirmed)
	require.NoError(t, err)

	assert.Equal(t, models.OrderConfirmed, updated.Status)
	assert.True(t, updated.StatusUpdatedAt.After(placedAt))
	assert.True(t, updated.OrderDate.Equal(order.OrderDate))
	assert.Equal(t, order.Total, updated.Total)
	assert.Equal(t, 2, updated.Version)
}

func TestAdvanceStatus_FullChain(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	final := f.advanceTo(t, order.ID,
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderOutForDelivery,
		models.OrderDelivered,
	)
	assert.Equal(t, models.OrderDelivered, final.Status)

	history, err := f.orders.History(f.ctx, f.owner, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, models.OrderOutForDelivery, history[4].FromStatus)
	assert.Equal(t, models.OrderDelivered, history[4].ToStatus)
	assert.Equal(t, f.owner.ID, history[4].ChangedBy)
}

func TestAdvanceStatus_Rejections(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	_, err := f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderPreparing)
	assert.ErrorIs(t, err, ErrInvalidTransition, "skipping CONFIRMED")

	_, err = f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderPlaced)
	assert.ErrorIs(t, err, ErrInvalidTransition, "same status")

	_, err = f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderStatus("SHIPPED"))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.orders.AdvanceStatus(f.ctx, f.customer, order.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.orders.AdvanceStatus(f.ctx, nil, order.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.orders.AdvanceStatus(f.ctx, f.owner, 4242, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)

	f.advanceTo(t, order.ID, models.OrderConfirmed, models.OrderPreparing)
	_, err = f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition, "backwards")
}

func TestAdvanceStatus_NonOwnerDeniedInEveryState(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	chain := []models.OrderStatus{models.OrderConfirmed, models.OrderPreparing, models.OrderOutForDelivery, models.OrderDelivered}
	for _, next := range chain {
		for _, target := range models.AllOrderStatuses() {
			_, err := f.orders.AdvanceStatus(f.ctx, f.otherOwner, order.ID, target)
			assert.ErrorIs(t, err, ErrAccessDenied)
		}
		f.advanceTo(t, order.ID, next)
	}

	_, err := f.orders.AdvanceStatus(f.ctx, f.otherOwner, order.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrAccessDenied)

	cancelled := f.placeOrder(t)
	_, err = f.orders.CancelByUser(f.ctx, f.customer, cancelled.ID)
	require.NoError(t, err)
	_, err = f.orders.AdvanceStatus(f.ctx, f.otherOwner, cancelled.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAdvanceStatus_CancelledTargetCancelsAsRestaurant(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	updated, err := f.orders.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.Status)
	require.NotNil(t, updated.CancelledBy)
	assert.Equal(t, models.CancelledByRestaurant, *updated.CancelledBy)
	require.NotNil(t, updated.CancellationReason)
	assert.Equal(t, models.DefaultRestaurantCancelReason, *updated.CancellationReason)

	preparing := f.placeOrder(t)
	f.advanceTo(t, preparing.ID, models.OrderConfirmed, models.OrderPreparing)
	_, err = f.orders.AdvanceStatus(f.ctx, f.owner, preparing.ID, models.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByUser(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	_, err := f.orders.CancelByUser(f.ctx, f.neighbour, order.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	f.clock.Advance(time.Minute)
	cancelled, err := f.orders.CancelByUser(f.ctx, f.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, models.CancelledByUser, *cancelled.CancelledBy)
	assert.Nil(t, cancelled.CancellationReason)
	assert.True(t, cancelled.StatusUpdatedAt.Equal(f.clock.t))

	confirmed := f.placeOrder(t)
	f.advanceTo(t, confirmed.ID, models.OrderConfirmed)
	_, err = f.orders.CancelByUser(f.ctx, f.customer, confirmed.ID)
	assert.NoError(t, err)
}

func TestCancelByUser_TooLate(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)
	f.advanceTo(t, order.ID, models.OrderConfirmed, models.OrderPreparing)

	_, err := f.orders.CancelByUser(f.ctx, f.customer, order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := f.orders.Get(f.ctx, f.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, got.Status)
}

func TestCancelByRestaurant(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)
	f.advanceTo(t, order.ID, models.OrderConfirmed)

	_, err := f.orders.CancelByRestaurant(f.ctx, f.otherOwner, order.ID, "nope")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.orders.CancelByRestaurant(f.ctx, f.customer, order.ID, "nope")
	assert.ErrorIs(t, err, ErrAccessDenied)

	cancelled, err := f.orders.CancelByRestaurant(f.ctx, f.owner, order.ID, "Out of stock")
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, models.CancelledByRestaurant, *cancelled.CancelledBy)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "Out of stock", *cancelled.CancellationReason)
}

func TestCancelByRestaurant_BlankReason(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	cancelled, err := f.orders.CancelByRestaurant(f.ctx, f.owner, order.ID, "   ")
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "Cancelled by restaurant", *cancelled.CancellationReason)
}

func TestTerminalOrdersRejectEveryChange(t *testing.T) {
	f := newFixture(t, true)

	delivered := f.placeOrder(t)
	f.advanceTo(t, delivered.ID, models.OrderConfirmed, models.OrderPreparing, models.OrderOutForDelivery, models.OrderDelivered)

	cancelled := f.placeOrder(t)
	_, err := f.orders.CancelByRestaurant(f.ctx, f.owner, cancelled.ID, "")
	require.NoError(t, err)

	for _, id := range []uint{delivered.ID, cancelled.ID} {
		for _, target := range models.AllOrderStatuses() {
			_, err := f.orders.AdvanceStatus(f.ctx, f.owner, id, target)
			assert.ErrorIs(t, err, ErrInvalidTransition, target)
		}
		_, err := f.orders.CancelByUser(f.ctx, f.customer, id)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = f.orders.CancelByRestaurant(f.ctx, f.owner, id, "late")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

// staleRepo loses every status race.
type staleRepo struct {
	repository.OrderRepository
}

func (staleRepo) UpdateStatus(context.Context, repository.StatusChange) error {
	return repository.ErrStaleOrder
}

// brokenRepo fails every status write.
type brokenRepo struct {
	repository.OrderRepository
}

func (brokenRepo) UpdateStatus(context.Context, repository.StatusChange) error {
	return errors.New("connection reset")
}

func TestAdvanceStatus_ConcurrentWriterWins(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	svc := NewOrderService(staleRepo{f.orderRepo}, f.restaurantRepo, f.menuRepo, f.userRepo, f.pricing, OrderOptions{Now: f.clock.Now})
	_, err := svc.AdvanceStatus(f.ctx, f.owner, order.ID, models.OrderConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	broken := NewOrderService(brokenRepo{f.orderRepo}, f.restaurantRepo, f.menuRepo, f.userRepo, f.pricing, OrderOptions{Now: f.clock.Now})
	_, err = broken.CancelByUser(f.ctx, f.customer, order.ID)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, "Something went wrong. Please try again.", MessageOf(err))

	got, err := f.orders.Get(f.ctx, f.customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPlaced, got.Status)
}

func TestListForUser_NewestFirst(t *testing.T) {
	f := newFixture(t, true)
	first := f.placeOrder(t)
	f.clock.Advance(time.Hour)
	second := f.placeOrder(t)

	orders, err := f.orders.ListForUser(f.ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	none, err := f.orders.ListForUser(f.ctx, f.neighbour)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.orders.ListForUser(f.ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestListForRestaurant(t *testing.T) {
	f := newFixture(t, true)
	f.placeOrder(t)
	f.clock.Advance(time.Minute)
	latest := f.placeOrder(t)

	orders, err := f.orders.ListForRestaurant(f.ctx, f.owner, f.restaurant.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, latest.ID, orders[0].ID)

	_, err = f.orders.ListForRestaurant(f.ctx, f.otherOwner, f.restaurant.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.orders.ListForRestaurant(f.ctx, f.customer, f.restaurant.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.orders.ListForRestaurant(f.ctx, f.owner, 777)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture(t, true)
	order := f.placeOrder(t)

	_, err := f.orders.Get(f.ctx, f.customer, order.ID)
	assert.NoError(t, err)
	_, err = f.orders.Get(f.ctx, f.owner, order.ID)
	assert.NoError(t, err)

	_, err = f.orders.Get(f.ctx, f.neighbour, order.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = f.orders.Get(f.ctx, f.otherOwner, order.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = f.orders.History(f.ctx, f.neighbour, order.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.orders.Get(f.ctx, f.customer, 5555)
	assert.ErrorIs(t, err, ErrNotFound)
}
