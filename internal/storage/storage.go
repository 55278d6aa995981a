package storage

import (
	"context"
	"errors"

	"github.com/mherrero/mimapa-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations over registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// ItemStore captures persistence operations over map items.
type ItemStore interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	ListItemsByOwner(ctx context.Context, owner string) ([]models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// VisitStore is the append-only log of map views. Recording and reading are
// independent operations; callers get no atomicity across the two.
type VisitStore interface {
	RecordVisit(ctx context.Context, visit models.Visit) error
	ListVisitsForHost(ctx context.Context, host string) ([]models.Visit, error)
}
