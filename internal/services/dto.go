package services

import "local_delivery/internal/models"

// Request bodies accepted at the HTTP boundary. The binding tags are checked
// by gin before a request reaches a service; services still re-check the
// fields they depend on because the cart checkout builds requests itself.

type PlaceOrderRequest struct {
	RestaurantID    uint               `json:"restaurant_id" binding:"required"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal        *float64           `json:"subtotal" binding:"omitempty,gte=0"`
	Taxes           *float64           `json:"taxes" binding:"omitempty,gte=0"`
	DeliveryFee     *float64           `json:"delivery_fee" binding:"omitempty,gte=0"`
	Total           *float64           `json:"total" binding:"required,gt=0"`
	DeliveryAddress string             `json:"delivery_address" binding:"max=500"`
}

type OrderItemRequest struct {
	MenuItemID uint    `json:"menu_item_id" binding:"required"`
	Name       string  `json:"name"`
	Price      float64 `json:"price" binding:"gte=0"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
	Image      string  `json:"image"`
}

type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type RestaurantCancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type LocationRequest struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
}

func (l *LocationRequest) toModel() models.Location {
	lat, lng := *l.Lat, *l.Lng
	return models.Location{Address: l.Address, Lat: &lat, Lng: &lng}
}

type RestaurantRequest struct {
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Phone    string           `json:"phone"`
	Location *LocationRequest `json:"location"`
}

type ProfileUpdateRequest struct {
	Phone    string           `json:"phone"`
	Address  string           `json:"address"`
	Location *LocationRequest `json:"location"`
}

type MenuItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"gt=0"`
	Description  string  `json:"description"`
	Image        string  `json:"image" binding:"omitempty,url"`
	IsVeg        *bool   `json:"is_veg"`
	IsBestSeller bool    `json:"is_best_seller"`
}

type CartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type CartUpdateRequest struct {
	Items []CartItemRequest `json:"items" binding:"dive"`
}

type CheckoutRequest struct {
	Total           *float64 `json:"total" binding:"required,gt=0"`
	DeliveryAddress string   `json:"delivery_address" binding:"max=500"`
}
