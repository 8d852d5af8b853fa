package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/redis"
)

type stubRepo struct {
	products  []models.Product
	listCalls int
	err       error
}

func (s *stubRepo) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSnapshotStore struct {
	values map[string]string
	sets   int
	dels   int
}

func newStubSnapshotStore() *stubSnapshotStore {
	return &stubSnapshotStore{values: map[string]string{}}
}

func (s *stubSnapshotStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubSnapshotStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.sets++
	s.values[key] = value.(string)
	return nil
}

func (s *stubSnapshotStore) Del(ctx context.Context, keys ...string) error {
	s.dels++
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *stubSnapshotStore) CatalogKey(scope string) string {
	return "test:catalog:" + scope
}

var _ redis.SnapshotStore = (*stubSnapshotStore)(nil)

func catalogProduct(name string, gender enums.Gender, color string, stock map[enums.Size]int) models.Product {
	product := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.NewFromInt(350),
		Sizes:    []string{"M", "L", "XL"},
		Gender:   gender,
		Color:    color,
		IsActive: true,
	}
	for size, qty := range stock {
		product.Stock = append(product.Stock, models.ProductStock{
			ProductID: product.ID,
			Size:      size,
			Quantity:  qty,
		})
	}
	return product
}

func newTestService(t *testing.T, repo Repository, cache redis.SnapshotStore) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "catalog-test", Output: io.Discard})
	svc, err := NewService(repo, cache, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestFetchProductsMergesStock(t *testing.T) {
	product := catalogProduct("Basic Tee", enums.GenderUnisex, "black", map[enums.Size]int{
		enums.SizeM: 4,
		enums.SizeL: 0,
	})
	svc := newTestService(t, &stubRepo{products: []models.Product{product}}, nil)

	views, err := svc.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}

	stock := views[0].Stock
	if stock[enums.SizeM] != 4 {
		t.Errorf("stock M = %d, want 4", stock[enums.SizeM])
	}
	// offered size with no stock row reports zero
	if stock[enums.SizeXL] != 0 {
		t.Errorf("stock XL = %d, want 0 for missing row", stock[enums.SizeXL])
	}
}

func TestFetchProductsServesFromCache(t *testing.T) {
	repo := &stubRepo{products: []models.Product{
		catalogProduct("Basic Tee", enums.GenderUnisex, "black", nil),
	}}
	cache := newStubSnapshotStore()
	svc := newTestService(t, repo, cache)

	for i := 0; i < 3; i++ {
		if _, err := svc.FetchProducts(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("repo consulted %d times, want 1 (cache warm)", repo.listCalls)
	}
	if cache.sets != 1 {
		t.Errorf("cache written %d times, want 1", cache.sets)
	}
}

func TestRefreshReplacesSnapshotWhole(t *testing.T) {
	repo := &stubRepo{products: []models.Product{
		catalogProduct("Basic Tee", enums.GenderUnisex, "black", map[enums.Size]int{enums.SizeM: 2}),
	}}
	cache := newStubSnapshotStore()
	svc := newTestService(t, repo, cache)

	if _, err := svc.FetchProducts(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}

	repo.products = []models.Product{
		catalogProduct("New Drop", enums.GenderMale, "navy", map[enums.Size]int{enums.SizeM: 9}),
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if cache.dels != 1 {
		t.Errorf("cache dropped %d times, want 1", cache.dels)
	}

	views, err := svc.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("fetch after refresh: %v", err)
	}
	if len(views) != 1 || views[0].Name != "New Drop" {
		t.Fatalf("snapshot not replaced: %+v", views)
	}
	if repo.listCalls != 2 {
		t.Errorf("repo consulted %d times, want 2", repo.listCalls)
	}
}

func TestGetProductWithStockBypassesCache(t *testing.T) {
	product := catalogProduct("Basic Tee", enums.GenderUnisex, "black", map[enums.Size]int{enums.SizeM: 7})
	repo := &stubRepo{products: []models.Product{product}}
	svc := newTestService(t, repo, newStubSnapshotStore())

	got, stock, err := svc.GetProductWithStock(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != product.ID {
		t.Errorf("product id mismatch")
	}
	if stock[enums.SizeM] != 7 {
		t.Errorf("stock M = %d, want 7", stock[enums.SizeM])
	}
}

func TestGetProductWithStockUnknownID(t *testing.T) {
	svc := newTestService(t, &stubRepo{}, nil)
	_, _, err := svc.GetProductWithStock(context.Background(), uuid.New())
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProductWithStockHidesInactive(t *testing.T) {
	product := catalogProduct("Retired Tee", enums.GenderUnisex, "black", nil)
	product.IsActive = false
	svc := newTestService(t, &stubRepo{products: []models.Product{product}}, nil)

	_, _, err := svc.GetProductWithStock(context.Background(), product.ID)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive product, got %v", err)
	}
}

func TestListProductsFilters(t *testing.T) {
	products := []models.Product{
		catalogProduct("Linen Shirt", enums.GenderMale, "white", map[enums.Size]int{enums.SizeM: 3}),
		catalogProduct("Summer Dress", enums.GenderFemale, "red", map[enums.Size]int{enums.SizeL: 2}),
		catalogProduct("Oversized Hoodie", enums.GenderUnisex, "black", map[enums.Size]int{enums.SizeXL: 0}),
	}
	svc := newTestService(t, &stubRepo{products: products}, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"Linen Shirt", "Summer Dress", "Oversized Hoodie"}},
		{"gender", Filter{Gender: "female"}, []string{"Summer Dress"}},
		{"color case-insensitive", Filter{Color: "WHITE"}, []string{"Linen Shirt"}},
		{"size requires stock", Filter{Size: "XL"}, nil},
		{"size with stock", Filter{Size: "m"}, []string{"Linen Shirt"}},
		{"search name", Filter{Search: "hoodie"}, []string{"Oversized Hoodie"}},
		{"search gender token", Filter{Search: "female"}, []string{"Summer Dress"}},
		{"search no match", Filter{Search: "denim"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			views, err := svc.ListProducts(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			var names []string
			for _, view := range views {
				names = append(names, view.Name)
			}
			if len(names) != len(tc.want) {
				t.Fatalf("names = %v, want %v", names, tc.want)
			}
			for i := range names {
				if names[i] != tc.want[i] {
					t.Fatalf("names = %v, want %v", names, tc.want)
				}
			}
		})
	}
}
