package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/bookstore/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) NewReleases(ctx context.Context, limit int) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) GetBookWithReviews(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.DB.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name") }).
		Where("id = ?", id).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// SearchBooks matches q as a case-insensitive substring of title, author or description.
func (r *GormRepo) SearchBooks(ctx context.Context, q string) ([]models.Book, error) {
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"

	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(author) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("title ASC").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) BooksByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error) {
	if len(ids) == 0 {
		return []models.Book{}, nil
	}
	var books []models.Book
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// LockBooks loads the given books and holds their rows until the surrounding
// transaction ends.
func (r *GormRepo) LockBooks(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Book, error) {
	out := make(map[uuid.UUID]models.Book, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var books []models.Book
	q := r.forUpdate(r.DB.WithContext(ctx)).Where("id IN ?", ids).Order("id ASC")
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	for _, b := range books {
		out[b.ID] = b
	}
	return out, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Omit("Reviews").Create(book).Error
}

func (r *GormRepo) UpdateBook(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Book, error) {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetBook(ctx, id)
}

// DecrementStock subtracts q from the current stock unless that would go negative.
func (r *GormRepo) DecrementStock(ctx context.Context, bookID uuid.UUID, q int) error {
	if q <= 0 {
		return ErrInvalidQuantity
	}
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND stock >= ?", bookID, q).
		Update("stock", gorm.Expr("stock - ?", q))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotEnoughStock
	}
	return nil
}

func (r *GormRepo) IncrementStock(ctx context.Context, bookID uuid.UUID, q int) error {
	if q <= 0 {
		return ErrInvalidQuantity
	}
	return r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", bookID).
		Update("stock", gorm.Expr("stock + ?", q)).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
