package services

import (
	"context"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"log"
	"time"
)

// CartStore persists carts with an expiry. GetCart returns nil, nil for a
// missing or expired cart.
type CartStore interface {
	GetCart(ctx context.Context, userID, restaurantID uint) (*models.Cart, error)
	SetCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error
	DeleteCart(ctx context.Context, userID, restaurantID uint) error
}

type CartView struct {
	Cart  *models.Cart `json:"cart"`
	Quote Totals       `json:"quote"`
}

type CartService interface {
	Get(ctx context.Context, actor *models.Actor, restaurantID uint) (*CartView, error)
	Replace(ctx context.Context, actor *models.Actor, restaurantID uint, req CartUpdateRequest) (*CartView, error)
	Clear(ctx context.Context, actor *models.Actor, restaurantID uint) error
	Checkout(ctx context.Context, actor *models.Actor, restaurantID uint, req CheckoutRequest) (*models.Order, error)
}

type cartService struct {
	store    CartStore
	menuRepo repository.MenuRepository
	pricing  PricingService
	orders   OrderService
	ttl      time.Duration
	now      func() time.Time
}

func NewCartService(store CartStore, menuRepo repository.MenuRepository, pricing PricingService, orders OrderService, ttl time.Duration) CartService {
	return &cartService{
		store:    store,
		menuRepo: menuRepo,
		pricing:  pricing,
		orders:   orders,
		ttl:      ttl,
		now:      time.Now,
	}
}

func requireCustomer(actor *models.Actor) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if actor.Role != models.RoleUser {
		return accessDenied("Only customers have a cart")
	}
	return nil
}

func (s *cartService) Get(ctx context.Context, actor *models.Actor, restaurantID uint) (*CartView, error) {
	if err := requireCustomer(actor); err != nil {
		return nil, err
	}
	cart, err := s.load(ctx, actor.ID, restaurantID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// Replace stores the given lines as the whole cart. Names and prices come
// from the menu. An empty list clears the cart.
func (s *cartService) Replace(ctx context.Context, actor *models.Actor, restaurantID uint, req CartUpdateRequest) (*CartView, error) {
	if err := requireCustomer(actor); err != nil {
		return nil, err
	}

	cart := models.NewCart(actor.ID, restaurantID)
	if len(req.Items) == 0 {
		if err := s.Clear(ctx, actor, restaurantID); err != nil {
			return nil, err
		}
		return s.view(ctx, cart)
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
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

	for _, it := range req.Items {
		m, ok := byID[it.MenuItemID]
		if !ok || !m.IsAvailable {
			return nil, validation("Menu item %d is not available from this restaurant", it.MenuItemID)
		}
		if err := cart.SetItem(models.CartItem{
			MenuItemID: m.ID,
			Name:       m.Name,
			UnitPrice:  m.Price,
			Quantity:   it.Quantity,
			Image:      m.Image,
		}); err != nil {
			return nil, validation("%s", err.Error())
		}
	}
	cart.UpdatedAt = s.now()

	if err := s.store.SetCart(ctx, cart, s.ttl); err != nil {
		return nil, storage("failed to save cart", err)
	}
	return s.view(ctx, cart)
}

func (s *cartService) Clear(ctx context.Context, actor *models.Actor, restaurantID uint) error {
	if err := requireCustomer(actor); err != nil {
		return err
	}
	if err := s.store.DeleteCart(ctx, actor.ID, restaurantID); err != nil {
		return storage("failed to clear cart", err)
	}
	return nil
}

// Checkout places an order from the stored cart and clears it.
func (s *cartService) Checkout(ctx context.Context, actor *models.Actor, restaurantID uint, req CheckoutRequest) (*models.Order, error) {
	if err := requireCustomer(actor); err != nil {
		return nil, err
	}
	cart, err := s.load(ctx, actor.ID, restaurantID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, validation("Your cart is empty")
	}

	placeReq := PlaceOrderRequest{
		RestaurantID:    restaurantID,
		Items:           make([]OrderItemRequest, 0, len(cart.Items)),
		Total:           req.Total,
		DeliveryAddress: req.DeliveryAddress,
	}
	for _, it := range cart.Items {
		placeReq.Items = append(placeReq.Items, OrderItemRequest{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.UnitPrice,
			Quantity:   it.Quantity,
			Image:      it.Image,
		})
	}

	order, err := s.orders.Place(ctx, actor, placeReq)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteCart(ctx, actor.ID, restaurantID); err != nil {
		log.Printf("Warning: order %s placed but cart was not cleared: %v", order.OrderNumber, err)
	}
	return order, nil
}

func (s *cartService) load(ctx context.Context, userID, restaurantID uint) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID, restaurantID)
	if err != nil {
		return nil, storage("failed to load cart", err)
	}
	if cart == nil {
		cart = models.NewCart(userID, restaurantID)
	}
	return cart, nil
}

func (s *cartService) view(ctx context.Context, cart *models.Cart) (*CartView, error) {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, models.OrderItem{MenuItemID: it.MenuItemID, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}
	quote, err := s.pricing.Quote(ctx, items)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: cart, Quote: quote}, nil
}
