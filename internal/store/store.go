package store

import (
	"context"

	"storefront/api-service/internal/models"
)

type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

const (
	SortByName   = "name"
	SortByPrice  = "price"
	SortByRating = "rating"
	SortByNewest = "newest"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ProductFilter narrows and orders a catalog listing. Zero values mean
// "no constraint"; Normalize clamps paging before any query runs.
type ProductFilter struct {
	Search    string
	Brand     string
	Category  string
	MinPrice  float64
	MaxPrice  float64
	HasMin    bool
	HasMax    bool
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Normalize applies the paging and ordering defaults shared by every store
// implementation: page >= 1, limit in [1,100] defaulting to 12, sort by name
// ascending unless a known alternative is requested.
func (f *ProductFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 12
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	switch f.SortBy {
	case SortByName, SortByPrice, SortByRating, SortByNewest:
	default:
		f.SortBy = SortByName
	}
	switch f.SortOrder {
	case SortAsc, SortDesc:
	default:
		f.SortOrder = SortAsc
	}
}

// Store is the credential and catalog repository the HTTP layer talks to.
// CreateUser hashes the password and enforces email uniqueness atomically.
// Authenticate collapses unknown-user and wrong-password into a single
// ErrInvalidCredentials so callers cannot enumerate accounts.
type Store interface {
	CreateUser(ctx context.Context, input NewUser) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListProducts(ctx context.Context, filter ProductFilter) (ProductPage, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
}
