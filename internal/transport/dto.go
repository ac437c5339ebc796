package transport

import (
	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  *models.User
	Token string
}

type CreateBookRequest struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type PatchBookRequest struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type PatchReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type AddToCartRequest struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity *int      `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartLine struct {
	ID       uuid.UUID       `json:"id"`
	Quantity int             `json:"quantity"`
	Book     *models.Book    `json:"book"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	ID         uuid.UUID       `json:"id"`
	Items      []CartLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type AddToWishlistRequest struct {
	BookID uuid.UUID `json:"bookId"`
}

type WishlistLine struct {
	ID   uuid.UUID    `json:"id"`
	Book *models.Book `json:"book"`
}

type WishlistView struct {
	ID    uuid.UUID      `json:"id"`
	Items []WishlistLine `json:"items"`
}

type CreateOrderItem struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

type CreateOrderRequest struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	ShippingAddress string            `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	Items           []CreateOrderItem `json:"items"`
	ClearCart       bool              `json:"clearCart"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
