package services

import (
	"context"
	"testing"
	"time"

	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"local_delivery/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	ctx   context.Context
	clock *fakeClock

	store          *memory.Store
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	settingsRepo   repository.SettingsRepository

	pricing PricingService
	orders  OrderService
	carts   CartService

	customer   *models.Actor
	neighbour  *models.Actor
	owner      *models.Actor
	otherOwner *models.Actor

	restaurant    *models.Restaurant
	farRestaurant *models.Restaurant
	paneer        *models.MenuItem
	lassi         *models.MenuItem
	soldOut       *models.MenuItem
	farDish       *models.MenuItem
}

func f64(v float64) *float64 { return &v }

func location(lat, lng float64) models.Location {
	return models.Location{Address: "somewhere", Lat: f64(lat), Lng: f64(lng)}
}

var defaultRules = PricingRules{TaxRatePercent: 5, DeliveryFee: 40, DeliveryRadiusKm: 5}

func newFixture(t *testing.T, enforceRadius bool) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   context.Background(),
		clock: &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		store: memory.NewStore(),
	}
	f.orderRepo = memory.NewOrderRepository(f.store)
	f.restaurantRepo = memory.NewRestaurantRepository(f.store)
	f.menuRepo = memory.NewMenuRepository(f.store)
	f.userRepo = memory.NewUserRepository(f.store)
	f.settingsRepo = memory.NewSettingsRepository(f.store)

	f.pricing = NewPricingService(f.settingsRepo, defaultRules)
	f.orders = NewOrderService(f.orderRepo, f.restaurantRepo, f.menuRepo, f.userRepo, f.pricing, OrderOptions{
		EnforceDeliveryRadius: enforceRadius,
		Now:                   f.clock.Now,
	})
	f.carts = NewCartService(memory.NewCartStore(f.store), f.menuRepo, f.pricing, f.orders, time.Hour)

	f.customer = f.addUser(t, "asha@example.com", models.RoleUser, location(20.0, 78.0))
	f.neighbour = f.addUser(t, "ravi@example.com", models.RoleUser, location(20.0, 78.0))
	f.owner = f.addUser(t, "owner@example.com", models.RoleRestaurant, models.Location{})
	f.otherOwner = f.addUser(t, "rival@example.com", models.RoleRestaurant, models.Location{})

	f.restaurant = &models.Restaurant{OwnerID: f.owner.ID, Name: "Spice Route", Location: location(20.01, 78.01)}
	require.NoError(t, f.restaurantRepo.Create(f.ctx, f.restaurant))
	f.farRestaurant = &models.Restaurant{OwnerID: f.otherOwner.ID, Name: "Far Away Diner", Location: location(20.05, 78.05)}
	require.NoError(t, f.restaurantRepo.Create(f.ctx, f.farRestaurant))

	f.paneer = f.addMenuItem(t, f.restaurant.ID, "Paneer Tikka", 100, true)
	f.lassi = f.addMenuItem(t, f.restaurant.ID, "Mango Lassi", 50, true)
	f.soldOut = f.addMenuItem(t, f.restaurant.ID, "Biryani", 220, false)
	f.farDish = f.addMenuItem(t, f.farRestaurant.ID, "Thali", 150, true)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, role models.Role, loc models.Location) *models.Actor {
	t.Helper()
	u := &models.User{Email: email, Name: email, Role: role, Location: loc}
	require.NoError(t, f.userRepo.Create(f.ctx, u))
	return &models.Actor{ID: u.ID, Role: role}
}

func (f *fixture) addMenuItem(t *testing.T, restaurantID uint, name string, price float64, available bool) *models.MenuItem {
	t.Helper()
	m := &models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price, IsAvailable: available}
	require.NoError(t, f.menuRepo.Create(f.ctx, m))
	return m
}

// standardRequest is 2 x 100 + 1 x 50: subtotal 250, taxes 12.5, fee 40, total 302.5.
func (f *fixture) standardRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		RestaurantID: f.restaurant.ID,
		Items: []OrderItemRequest{
			{MenuItemID: f.paneer.ID, Name: "Paneer Tikka", Price: 100, Quantity: 2},
			{MenuItemID: f.lassi.ID, Name: "Mango Lassi", Price: 50, Quantity: 1},
		},
		Subtotal:    f64(250),
		Taxes:       f64(12.5),
		DeliveryFee: f64(40),
		Total:       f64(302.5),
	}
}

func (f *fixture) placeOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.orders.Place(f.ctx, f.customer, f.standardRequest())
	require.NoError(t, err)
	return order
}

// advanceTo walks an order along the chain as the owner.
func (f *fixture) advanceTo(t *testing.T, orderID uint, statuses ...models.OrderStatus) *models.Order {
	t.Helper()
	var order *models.Order
	for _, st := range statuses {
		var err error
		order, err = f.orders.AdvanceStatus(f.ctx, f.owner, orderID, st)
		require.NoError(t, err, st)
	}
	return order
}
