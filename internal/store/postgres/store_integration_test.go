package postgres

import (
	"context"
	"os"
	"testing"

	"storefront/api-service/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestStore(t *testing.T, ctx context.Context) (*Store, func()) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or DB_DSN is required for integration tests")
	}

	if err := RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	return NewStore(pool), pool.Close
}

func TestCreateUserUniqueness(t *testing.T) {
	ctx := context.Background()
	st, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	input := store.NewUser{
		Email:     "integration-unique@example.com",
		Password:  "Abc12345!",
		FirstName: "A",
		LastName:  "B",
	}
	user, err := st.CreateUser(ctx, input)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = st.pool.Exec(context.Background(), `DELETE FROM users WHERE user_id = $1`, user.ID)
	})

	// The database index, not a scan, rejects the duplicate; case differences
	// do not evade it.
	input.Email = "Integration-Unique@Example.com"
	if _, err := st.CreateUser(ctx, input); err != store.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	authed, err := st.Authenticate(ctx, user.Email, "Abc12345!")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := st.Authenticate(ctx, user.Email, "WrongPass1@"); err != store.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSeededCatalog(t *testing.T) {
	ctx := context.Background()
	st, cleanup := setupTestStore(t, ctx)
	t.Cleanup(cleanup)

	page, err := st.ListProducts(ctx, store.ProductFilter{Brand: "Chanel", SortBy: store.SortByPrice, SortOrder: store.SortDesc})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 Chanel products, got %d", page.Total)
	}
	if len(page.Items) != 2 || page.Items[0].Price < page.Items[1].Price {
		t.Fatalf("expected price-descending order, got %+v", page.Items)
	}

	product, err := st.GetProduct(ctx, "1")
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.Name != "Black Opium" || product.DiscountedPrice != 99.99 {
		t.Fatalf("unexpected product: %+v", product)
	}

	if _, err := st.GetProduct(ctx, "does-not-exist"); err != store.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
