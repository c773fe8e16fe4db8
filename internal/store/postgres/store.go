// Package postgres implements the Store on a pgx connection pool. Email
// uniqueness is enforced by the database index, so registration's
// check-and-insert is atomic across processes.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/api-service/internal/models"
	"storefront/api-service/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateUser(ctx context.Context, input store.NewUser) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, user.ID, user.Email, string(hash), user.FirstName, user.LastName)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, store.ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	var passwordHash string
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, email, password_hash, first_name, last_name, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email)
	if err := row.Scan(&user.ID, &user.Email, &passwordHash, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, `WHERE user_id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, `WHERE lower(email) = lower($1)`, email)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (models.User, error) {
	var user models.User
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, email, first_name, last_name, created_at, updated_at
		FROM users
	`+where, arg)
	if err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) ListProducts(ctx context.Context, filter store.ProductFilter) (store.ProductPage, error) {
	filter.Normalize()

	var clauses []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s OR brand ILIKE %s)", p, p, p))
	}
	if filter.Brand != "" {
		clauses = append(clauses, "brand = "+arg(filter.Brand))
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = "+arg(filter.Category))
	}
	if filter.HasMin {
		clauses = append(clauses, "price >= "+arg(filter.MinPrice))
	}
	if filter.HasMax {
		clauses = append(clauses, "price <= "+arg(filter.MaxPrice))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM products `+where, args...).Scan(&total); err != nil {
		return store.ProductPage{}, err
	}

	orderColumn := "lower(name)"
	switch filter.SortBy {
	case store.SortByPrice:
		orderColumn = "price"
	case store.SortByRating:
		orderColumn = "rating"
	case store.SortByNewest:
		orderColumn = "created_at"
	}
	direction := "ASC"
	if filter.SortOrder == store.SortDesc {
		direction = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT product_id, name, description, price, discounted_price, image,
		       brand, fragrance, size, quantity, rating, reviews, category,
		       created_at, updated_at
		FROM products %s
		ORDER BY %s %s, product_id ASC
		LIMIT %s OFFSET %s
	`, where, orderColumn, direction, arg(filter.Limit), arg(offset))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return store.ProductPage{}, err
	}
	defer rows.Close()

	items := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return store.ProductPage{}, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return store.ProductPage{}, err
	}

	return store.ProductPage{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT product_id, name, description, price, discounted_price, image,
		       brand, fragrance, size, quantity, rating, reviews, category,
		       created_at, updated_at
		FROM products
		WHERE product_id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, store.ErrProductNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	var discounted *float64
	var createdAt, updatedAt time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &discounted, &p.Image,
		&p.Brand, &p.Fragrance, &p.Size, &p.Quantity, &p.Rating, &p.Reviews, &p.Category,
		&createdAt, &updatedAt); err != nil {
		return models.Product{}, err
	}
	if discounted != nil {
		p.DiscountedPrice = *discounted
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}
