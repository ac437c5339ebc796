package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/bookstore/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotEnoughStock is returned by a guarded stock decrement that would
// take a book below zero.
var ErrNotEnoughStock = errors.New("not enough stock")

// ErrInvalidQuantity is returned by stock writes given a non-positive quantity.
var ErrInvalidQuantity = errors.New("stock quantity must be positive")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// WithTx runs fn inside one database transaction. fn must use only the repo
// it receives; returning an error rolls back every write made through it.
func (r *GormRepo) WithTx(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(models.All()...)
}

// forUpdate adds a row lock where the dialect has one.
func (r *GormRepo) forUpdate(q *gorm.DB) *gorm.DB {
	if r.DB.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// DeleteAll removes every row from every table, children first.
func (r *GormRepo) DeleteAll(ctx context.Context) error {
	all := models.All()
	db := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Delete(all[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
