package services

import (
	"context"
	"errors"
	"fmt"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"local_delivery/pkg/geo"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderService interface {
	Place(ctx context.Context, actor *models.Actor, req PlaceOrderRequest) (*models.Order, error)
	AdvanceStatus(ctx context.Context, actor *models.Actor, orderID uint, target models.OrderStatus) (*models.Order, error)
	CancelByUser(ctx context.Context, actor *models.Actor, orderID uint) (*models.Order, error)
	CancelByRestaurant(ctx context.Context, actor *models.Actor, orderID uint, reason string) (*models.Order, error)
	ListForUser(ctx context.Context, actor *models.Actor) ([]models.Order, error)
	ListForRestaurant(ctx context.Context, actor *models.Actor, restaurantID uint) ([]models.Order, error)
	Get(ctx context.Context, actor *models.Actor, orderID uint) (*models.Order, error)
	History(ctx context.Context, actor *models.Actor, orderID uint) ([]models.OrderStatusHistory, error)
}

type OrderOptions struct {
	// EnforceDeliveryRadius rejects orders from users outside the delivery radius.
	EnforceDeliveryRadius bool
	Now                   func() time.Time
}

type orderService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	pricing        PricingService
	enforceRadius  bool
	now            func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	pricing PricingService,
	opts OrderOptions,
) OrderService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &orderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		pricing:        pricing,
		enforceRadius:  opts.EnforceDeliveryRadius,
		now:            now,
	}
}

func (s *orderService) Place(ctx context.Context, actor *models.Actor, req PlaceOrderRequest) (*models.Order, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if actor.Role != models.RoleUser {
		return nil, accessDenied("Only customers can place orders")
	}
	if err := validatePlaceRequest(req); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found", "failed to get restaurant")
	}
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, lookupError(err, "User not found", "failed to get user")
	}

	rules, err := s.pricing.Rules(ctx)
	if err != nil {
		return nil, err
	}
	if s.enforceRadius {
		if err := checkDeliveryRange(user, restaurant, rules.DeliveryRadiusKm); err != nil {
			return nil, err
		}
	}

	items, err := s.snapshotItems(ctx, restaurant.ID, req.Items)
	if err != nil {
		return nil, err
	}

	totals := computeTotals(items, rules)
	if err := checkClientTotals(req, totals); err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		OrderNumber:     uuid.NewString(),
		UserID:          actor.ID,
		RestaurantID:    restaurant.ID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Taxes:           totals.Taxes,
		DeliveryFee:     totals.DeliveryFee,
		Total:           totals.Total,
		DeliveryAddress: deliveryAddress(req.DeliveryAddress, user),
		Status:          models.OrderPlaced,
		OrderDate:       now,
		StatusUpdatedAt: now,
		Version:         1,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, storage("failed to place order", err)
	}
	return order, nil
}

func validatePlaceRequest(req PlaceOrderRequest) error {
	if req.RestaurantID == 0 || len(req.Items) == 0 || req.Total == nil {
		return validation("Missing required order information")
	}
	if *req.Total <= 0 {
		return validation("Total must be greater than zero")
	}

	seen := make(map[uint]bool, len(req.Items))
	for _, item := range req.Items {
		if item.MenuItemID == 0 {
			return validation("Every item needs a menu_item_id")
		}
		if item.Quantity < 1 {
			return validation("Quantity must be at least 1")
		}
		if seen[item.MenuItemID] {
			return validation("Menu item %d appears more than once", item.MenuItemID)
		}
		seen[item.MenuItemID] = true
	}
	return nil
}

func checkDeliveryRange(user *models.User, restaurant *models.Restaurant, radiusKm float64) error {
	userPoint := user.Location.Point()
	if userPoint == nil {
		return validation("Please set your delivery location before placing an order")
	}
	restaurantPoint := restaurant.Location.Point()
	if restaurantPoint == nil {
		return validation("This restaurant has not set its location and cannot deliver yet")
	}

	e := geo.CheckEligibility(userPoint, restaurantPoint, radiusKm)
	if !e.Eligible {
		return validation("Sorry, this restaurant is %.1f km away. We only deliver within %g km.", *e.DistanceKm, radiusKm)
	}
	return nil
}

// snapshotItems resolves requested items against the live menu. Name, price
// and image always come from the menu, never from the client.
func (s *orderService) snapshotItems(ctx context.Context, restaurantID uint, reqItems []OrderItemRequest) ([]models.OrderItem, error) {
	ids := make([]uint, 0, len(reqItems))
	for _, it := range reqItems {
		ids = append(ids, it.MenuItemID)
	}

	menuItems, err := s.menuRepo.GetByIDs(ctx, restaurantID, ids)
	if err != nil {
		return nil, storage("failed to load menu", err)
	}
	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, m := range menuItems {
		byID[m.ID] = m
	}

	items := make([]models.OrderItem, 0, len(reqItems))
	for _, it := range reqItems {
		m, ok := byID[it.MenuItemID]
		if !ok || !m.IsAvailable {
			return nil, validation("Menu item %d is not available from this restaurant", it.MenuItemID)
		}
		items = append(items, models.OrderItem{
			MenuItemID: m.ID,
			Name:       m.Name,
			UnitPrice:  m.Price,
			Quantity:   it.Quantity,
			TotalPrice: lineTotal(m.Price, it.Quantity).InexactFloat64(),
			Image:      m.Image,
		})
	}
	return items, nil
}

func checkClientTotals(req PlaceOrderRequest, totals Totals) error {
	mismatch := func(field string, got *float64, want float64) error {
		if got != nil && !sameAmount(*got, want) {
			return validation("Order %s %.2f does not match the current menu (expected %.2f)", field, *got, want)
		}
		return nil
	}
	if err := mismatch("subtotal", req.Subtotal, totals.Subtotal); err != nil {
		return err
	}
	if err := mismatch("taxes", req.Taxes, totals.Taxes); err != nil {
		return err
	}
	if err := mismatch("delivery fee", req.DeliveryFee, totals.DeliveryFee); err != nil {
		return err
	}
	return mismatch("total", req.Total, totals.Total)
}

func deliveryAddress(requested string, user *models.User) *string {
	addr := strings.TrimSpace(requested)
	if addr == "" {
		addr = strings.TrimSpace(user.Location.Address)
	}
	if addr == "" {
		addr = strings.TrimSpace(user.Address)
	}
	if addr == "" {
		return nil
	}
	return &addr
}

func (s *orderService) AdvanceStatus(ctx context.Context, actor *models.Actor, orderID uint, target models.OrderStatus) (*models.Order, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, validation("Invalid status")
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, actor, order.RestaurantID, "You can only update orders for your own restaurant"); err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, invalidTransition("Cannot update status of completed or cancelled orders")
	}

	if target == models.OrderCancelled {
		return s.cancel(ctx, actor, order, models.CancelledByRestaurant, models.DefaultRestaurantCancelReason)
	}
	if !order.Status.CanAdvanceTo(target) {
		next, _ := order.Status.Next()
		return nil, invalidTransition("Cannot move order from %s to %s; next status is %s", order.Status, target, next)
	}

	return s.transition(ctx, actor, order, repository.StatusChange{
		ToStatus: target,
		Note:     fmt.Sprintf("status updated to %s", target),
	})
}

func (s *orderService) CancelByUser(ctx context.Context, actor *models.Actor, orderID uint) (*models.Order, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, accessDenied("Access denied")
	}
	if !order.Status.Cancellable() {
		return nil, invalidTransition("Order cannot be cancelled at this stage")
	}

	return s.cancel(ctx, actor, order, models.CancelledByUser, "")
}

func (s *orderService) CancelByRestaurant(ctx context.Context, actor *models.Actor, orderID uint, reason string) (*models.Order, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(ctx, actor, order.RestaurantID, "You can only cancel orders for your own restaurant"); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.DefaultRestaurantCancelReason
	}
	return s.cancel(ctx, actor, order, models.CancelledByRestaurant, reason)
}

// cancel moves a cancellable order to CANCELLED. The reason is only stored
// for restaurant-initiated cancellations.
func (s *orderService) cancel(ctx context.Context, actor *models.Actor, order *models.Order, by models.CancelledBy, reason string) (*models.Order, error) {
	if !order.Status.Cancellable() {
		return nil, invalidTransition("Can only cancel orders that are PLACED or CONFIRMED")
	}

	change := repository.StatusChange{
		ToStatus:    models.OrderCancelled,
		CancelledBy: &by,
		Note:        fmt.Sprintf("cancelled by %s", strings.ToLower(string(by))),
	}
	if by == models.CancelledByRestaurant {
		change.CancellationReason = &reason
		change.Note = reason
	}
	return s.transition(ctx, actor, order, change)
}

// transition applies change on top of the order as it was read. A concurrent
// writer that got there first turns into InvalidTransition.
func (s *orderService) transition(ctx context.Context, actor *models.Actor, order *models.Order, change repository.StatusChange) (*models.Order, error) {
	change.OrderID = order.ID
	change.FromStatus = order.Status
	change.FromVersion = order.Version
	change.ChangedBy = actor.ID
	change.At = s.now()

	if err := s.orderRepo.UpdateStatus(ctx, change); err != nil {
		if errors.Is(err, repository.ErrStaleOrder) {
			return nil, invalidTransition("Order status changed in the meantime; reload and try again")
		}
		return nil, storage("failed to update order status", err)
	}

	return s.getOrder(ctx, order.ID)
}

func (s *orderService) ListForUser(ctx context.Context, actor *models.Actor) ([]models.Order, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	orders, err := s.orderRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, storage("failed to fetch orders", err)
	}
	return orders, nil
}

func (s *orderService) ListForRestaurant(ctx context.Context, actor *models.Actor, restaurantID uint) ([]models.Order, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found", "failed to get restaurant")
	}
	if !restaurant.OwnedBy(actor.ID) {
		return nil, accessDenied("You can only view orders for your own restaurant")
	}

	orders, err := s.orderRepo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, storage("failed to fetch restaurant orders", err)
	}
	return orders, nil
}

// Get returns an order to the user who placed it or to the owner of its restaurant.
func (s *orderService) Get(ctx context.Context, actor *models.Actor, orderID uint) (*models.Order, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == actor.ID {
		return order, nil
	}
	if actor.Role == models.RoleRestaurant {
		if err := s.requireOwnership(ctx, actor, order.RestaurantID, "Access denied"); err == nil {
			return order, nil
		} else if KindOf(err) != KindAccessDenied {
			return nil, err
		}
	}
	return nil, accessDenied("Access denied")
}

func (s *orderService) History(ctx context.Context, actor *models.Actor, orderID uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.Get(ctx, actor, orderID); err != nil {
		return nil, err
	}
	history, err := s.orderRepo.GetHistory(ctx, orderID)
	if err != nil {
		return nil, storage("failed to fetch order history", err)
	}
	return history, nil
}

func (s *orderService) getOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, lookupError(err, "Order not found", "failed to fetch order")
	}
	return order, nil
}

// requireOwnership checks restaurant.ownerId == actor.id for the order's restaurant.
func (s *orderService) requireOwnership(ctx context.Context, actor *models.Actor, restaurantID uint, message string) error {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if errors.Is(err, repository.ErrNotFound) {
		return accessDenied(message)
	}
	if err != nil {
		return storage("failed to get restaurant", err)
	}
	if !restaurant.OwnedBy(actor.ID) {
		return accessDenied(message)
	}
	return nil
}

func requireRestaurantRole(actor *models.Actor) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.Role != models.RoleRestaurant {
		return accessDenied("Access denied. Restaurant owners only.")
	}
	return nil
}

func lookupError(err error, notFoundMessage, storageMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("%s", notFoundMessage)
	}
	return storage(storageMessage, err)
}
