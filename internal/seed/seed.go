// Package seed loads the demo catalog, accounts and order history.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/Skotchmaster/bookstore/internal/repo"
	pkg_hash "github.com/Skotchmaster/bookstore/pkg/hash"
	"github.com/shopspring/decimal"
)

const (
	DemoPassword  = "password123"
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"
)

type bookSeed struct {
	title, author, category, price, image, description string
	stock                                               int
}

var books = []bookSeed{
	{
		title: "To Kill a Mockingbird", author: "Harper Lee", category: "Programming", price: "12.99", stock: 50,
		image:       "https://itbook.store/img/books/9781098103828.png",
		description: "To Kill a Mockingbird is a novel by Harper Lee published in 1960. It was immediately successful, winning the Pulitzer Prize, and has become a classic of modern American literature.",
	},
	{
		title: "1984", author: "George Orwell", category: "Design", price: "10.99", stock: 75,
		image:       "https://itbook.store/img/books/9781098104030.png",
		description: "1984 is a dystopian novel by George Orwell published in 1949. The novel is set in Airstrip One, a province of the superstate Oceania in a world of perpetual war.",
	},
	{
		title: "The Great Gatsby", author: "F. Scott Fitzgerald", category: "Science", price: "11.99", stock: 30,
		image:       "https://itbook.store/img/books/9781098106225.png",
		description: "The Great Gatsby is a 1925 novel by American writer F. Scott Fitzgerald. Set in the Jazz Age on Long Island, the novel depicts first-person narrator Nick Carraway's interactions with mysterious millionaire Jay Gatsby.",
	},
	{
		title: "Pride and Prejudice", author: "Jane Austen", category: "Fiction", price: "9.99", stock: 20,
		image:       "https://itbook.store/img/books/9781098111878.png",
		description: "Pride and Prejudice is a romantic novel of manners written by Jane Austen in 1813. The novel follows the character development of Elizabeth Bennet.",
	},
	{
		title: "The Hobbit", author: "J.R.R. Tolkien", category: "Programming", price: "14.99", stock: 40,
		image:       "https://itbook.store/img/books/9781098112844.png",
		description: "The Hobbit, or There and Back Again is a children's fantasy novel by English author J. R. R. Tolkien. It was published on 21 September 1937.",
	},
	{
		title: "Harry Potter and the Philosopher's Stone", author: "J.K. Rowling", category: "Fiction", price: "15.99", stock: 100,
		image:       "https://itbook.store/img/books/9781098113162.png",
		description: "Harry Potter and the Philosopher's Stone is a fantasy novel written by British author J. K. Rowling. The first novel in the Harry Potter series.",
	},
	{
		title: "The Catcher in the Rye", author: "J.D. Salinger", category: "Fiction", price: "13.99", stock: 25,
		image:       "https://itbook.store/img/books/9781098116743.png",
		description: "The Catcher in the Rye is a novel by J. D. Salinger. A controversial novel originally published for adults, it has since become popular with adolescent readers for its themes of teenage angst and alienation.",
	},
	{
		title: "The Lord of the Rings", author: "J.R.R. Tolkien", category: "Fiction", price: "24.99", stock: 35,
		image:       "https://itbook.store/img/books/9781098119515.png",
		description: "The Lord of the Rings is an epic high fantasy novel written by English author J. R. R. Tolkien. The story began as a sequel to Tolkien's 1937 fantasy novel The Hobbit, but eventually developed into a much larger work.",
	},
}

type line struct {
	book *models.Book
	qty  int
}

// item freezes the book's current price on the order line.
func (l line) item() models.OrderItem {
	return models.OrderItem{BookID: l.book.ID, Quantity: l.qty, Price: l.book.Price}
}

func historicalOrder(u *models.User, address, payment string, status models.OrderStatus, items ...models.OrderItem) *models.Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &models.Order{
		UserID:          u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ShippingAddress: address,
		PaymentMethod:   payment,
		TotalAmount:     total,
		Status:          status,
		Items:           items,
	}
}

// Run wipes the database and loads the demo data in one transaction.
func Run(ctx context.Context, r *repo.GormRepo, l *slog.Logger) error {
	userHash, err := pkg_hash.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	adminHash, err := pkg_hash.HashPassword(AdminPassword)
	if err != nil {
		return err
	}

	return r.WithTx(ctx, func(tx *repo.GormRepo) error {
		l.Info("seed_cleanup")
		if err := tx.DeleteAll(ctx); err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}

		l.Info("seed_users")
		john := &models.User{Name: "John Doe", Email: "john@example.com", PasswordHash: userHash, Role: models.RoleUser}
		jane := &models.User{Name: "Jane Smith", Email: "jane@example.com", PasswordHash: userHash, Role: models.RoleUser}
		admin := &models.User{Name: "Store Admin", Email: AdminEmail, PasswordHash: adminHash, Role: models.RoleAdmin}
		for _, u := range []*models.User{john, jane, admin} {
			if err := tx.CreateUser(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
		}

		l.Info("seed_books", "count", len(books))
		created := make([]*models.Book, 0, len(books))
		for _, s := range books {
			b := &models.Book{
				Title:       s.title,
				Author:      s.author,
				Description: s.description,
				Category:    s.category,
				ImageURL:    s.image,
				Price:       decimal.RequireFromString(s.price),
				Stock:       s.stock,
			}
			if err := tx.CreateBook(ctx, b); err != nil {
				return fmt.Errorf("create book %q: %w", s.title, err)
			}
			created = append(created, b)
		}

		l.Info("seed_reviews")
		reviews := []models.Review{
			{Rating: 5, Comment: "A timeless classic!", UserID: john.ID, BookID: created[0].ID},
			{Rating: 4, Comment: "Great dystopian novel that still feels relevant today.", UserID: jane.ID, BookID: created[1].ID},
			{Rating: 5, Comment: "My favorite book of all time!", UserID: john.ID, BookID: created[4].ID},
			{Rating: 3, Comment: "Good but not what I expected.", UserID: jane.ID, BookID: created[6].ID},
			{Rating: 5, Comment: "Magical story for all ages!", UserID: john.ID, BookID: created[5].ID},
		}
		for i := range reviews {
			if err := tx.CreateReview(ctx, &reviews[i]); err != nil {
				return fmt.Errorf("create review: %w", err)
			}
		}

		l.Info("seed_wishlists")
		wishlists := map[*models.User][]*models.Book{
			john:  {created[5], created[7]},
			jane:  {created[0]},
			admin: nil,
		}
		for u, items := range wishlists {
			wl := &models.Wishlist{UserID: u.ID}
			if err := tx.CreateWishlist(ctx, wl); err != nil {
				return fmt.Errorf("create wishlist: %w", err)
			}
			for _, b := range items {
				if err := tx.CreateWishlistItem(ctx, &models.WishlistItem{WishlistID: wl.ID, BookID: b.ID}); err != nil {
					return fmt.Errorf("create wishlist item: %w", err)
				}
			}
		}

		l.Info("seed_carts")
		carts := map[*models.User][]line{
			john:  {{created[2], 1}, {created[3], 2}},
			jane:  {{created[5], 1}},
			admin: nil,
		}
		for u, lines := range carts {
			cart := &models.Cart{UserID: u.ID}
			if err := tx.CreateCart(ctx, cart); err != nil {
				return fmt.Errorf("create cart: %w", err)
			}
			for _, ln := range lines {
				if err := tx.CreateCartItem(ctx, &models.CartItem{CartID: cart.ID, BookID: ln.book.ID, Quantity: ln.qty}); err != nil {
					return fmt.Errorf("create cart item: %w", err)
				}
			}
		}

		l.Info("seed_orders")
		orders := []*models.Order{
			historicalOrder(john, "123 Main St, Anytown, AN 12345", "Credit Card", models.OrderStatusDelivered,
				line{created[2], 1}.item(), line{created[3], 2}.item()),
			historicalOrder(jane, "456 Oak Ave, Somewhere, SO 67890", "PayPal", models.OrderStatusShipped,
				line{created[5], 1}.item()),
		}
		for _, o := range orders {
			if err := tx.CreateOrder(ctx, o); err != nil {
				return fmt.Errorf("create order: %w", err)
			}
		}

		l.Info("seed_completed")
		return nil
	})
}
