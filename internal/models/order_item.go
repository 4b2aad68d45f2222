package models

// OrderItem is a snapshot of a menu item taken when the order is placed.
// It is never updated afterwards.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null"`
	Quantity   int     `json:"quantity" gorm:"not null"`
	TotalPrice float64 `json:"total_price" gorm:"not null"`
	Image      string  `json:"image"`
}
