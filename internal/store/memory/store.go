// Package memory provides the in-process Store used for development and
// tests. All access goes through a single mutex, so the uniqueness
// check-and-insert during registration is atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/api-service/internal/models"
	"storefront/api-service/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	user         models.User
	passwordHash []byte
}

type Store struct {
	mu       sync.RWMutex
	users    map[string]userRecord
	products []models.Product
}

func NewStore() *Store {
	return &Store{users: make(map[string]userRecord)}
}

// NewSeededStore returns a store pre-loaded with the demo catalog and the
// demo account (demo@example.com / Demo@12345).
func NewSeededStore() *Store {
	s := NewStore()
	s.products = seedProducts()
	hash, err := bcrypt.GenerateFromPassword([]byte("Demo@12345"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC()
	s.users["user-1"] = userRecord{
		user: models.User{
			ID:        "user-1",
			Email:     "demo@example.com",
			FirstName: "John",
			LastName:  "Doe",
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	return s
}

func (s *Store) CreateUser(ctx context.Context, input store.NewUser) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, input.Email) {
			return models.User{}, store.ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[user.ID] = userRecord{user: user, passwordHash: hash}
	return user, nil
}

func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	s.mu.RLock()
	var found *userRecord
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, email) {
			r := rec
			found = &r
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		// Burn a comparison anyway so the miss path costs roughly the same.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, store.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(found.passwordHash, []byte(password)); err != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	return found.user, nil
}

var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return rec.user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, email) {
			return rec.user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (s *Store) ListProducts(ctx context.Context, filter store.ProductFilter) (store.ProductPage, error) {
	filter.Normalize()

	s.mu.RLock()
	matched := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if matches(p, filter) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	sortProducts(matched, filter.SortBy, filter.SortOrder)

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	return store.ProductPage{
		Items: matched[start:end],
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, store.ErrProductNotFound
}

func matches(p models.Product, f store.ProductFilter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) {
			return false
		}
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.HasMin && p.Price < f.MinPrice {
		return false
	}
	if f.HasMax && p.Price > f.MaxPrice {
		return false
	}
	return true
}

func sortProducts(products []models.Product, sortBy, order string) {
	less := func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	switch sortBy {
	case store.SortByPrice:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case store.SortByRating:
		less = func(a, b models.Product) bool { return a.Rating < b.Rating }
	case store.SortByNewest:
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if order == store.SortDesc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}
