package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	Name         string    `gorm:"not null"                        json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"            json:"email"`
	PasswordHash string    `gorm:"column:password;not null"        json:"-"`
	Role         string    `gorm:"not null;default:'user'"         json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// Reviewer is the public projection of a user attached to reviews.
type Reviewer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (Reviewer) TableName() string {
	return "users"
}

type Book struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"                  json:"id"`
	Title       string          `gorm:"not null;index"                        json:"title"`
	Author      string          `gorm:"not null"                              json:"author"`
	Description string          `gorm:"not null;default:''"                   json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"           json:"price"`
	ImageURL    string          `gorm:"column:image_url"                      json:"imageUrl"`
	Category    string          `gorm:"index"                                 json:"category"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"   json:"stock"`
	CreatedAt   time.Time       `gorm:"index"                                 json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Reviews []Review `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                             json:"id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"       json:"rating"`
	Comment   string    `json:"comment"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_book" json:"userId"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_book;index" json:"bookId"`
	CreatedAt time.Time `gorm:"index"                                            json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *Reviewer `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	CartID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_book;not null"    json:"cartId"`
	BookID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_book;not null"    json:"bookId"`
	Quantity int       `gorm:"not null;default:1;check:quantity > 0"           json:"quantity"`

	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Wishlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WishlistItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"                               json:"id"`
	WishlistID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_book;not null"   json:"wishlistId"`
	BookID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_book;not null"   json:"bookId"`

	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"              json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"          json:"userId"`
	Name            string          `gorm:"not null;default:''"               json:"name"`
	Email           string          `gorm:"not null;default:''"               json:"email"`
	ShippingAddress string          `gorm:"not null;default:''"               json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null;default:''"               json:"paymentMethod"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"       json:"totalAmount"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt       time.Time       `gorm:"index"                             json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

type OrderItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"                  json:"id"`
	OrderID  uuid.UUID       `gorm:"type:uuid;index;not null"              json:"orderId"`
	BookID   uuid.UUID       `gorm:"type:uuid;index;not null"              json:"bookId"`
	Quantity int             `gorm:"not null;check:quantity > 0"           json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"           json:"price"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (o *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Book{},
		&Review{},
		&Cart{},
		&CartItem{},
		&Wishlist{},
		&WishlistItem{},
		&Order{},
		&OrderItem{},
	}
}
