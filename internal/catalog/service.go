package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/redis"
)

const (
	snapshotScope = "products"
	snapshotTTL   = 5 * time.Minute
)

// ProductView is the storefront-facing product shape: catalog fields merged
// with the live per-size stock counts. Sizes the product offers but has no
// stock row for report zero.
type ProductView struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Price          decimal.Decimal    `json:"price"`
	DiscountPrice  *decimal.Decimal   `json:"discount_price,omitempty"`
	EffectivePrice decimal.Decimal    `json:"effective_price"`
	Images         []string           `json:"images"`
	Sizes          []string           `json:"sizes"`
	Gender         enums.Gender       `json:"gender"`
	Color          string             `json:"color"`
	Stock          map[enums.Size]int `json:"stock"`
}

// Filter narrows the product list. Zero values mean no constraint.
type Filter struct {
	Gender string
	Size   string
	Color  string
	Search string
}

// Service exposes the catalog snapshot reads and its refresh hook.
type Service interface {
	FetchProducts(ctx context.Context) ([]ProductView, error)
	ListProducts(ctx context.Context, filter Filter) ([]ProductView, error)
	GetProductWithStock(ctx context.Context, productID uuid.UUID) (*models.Product, map[enums.Size]int, error)
	Refresh(ctx context.Context) error
}

type service struct {
	repo   Repository
	cache  redis.SnapshotStore
	logger *logger.Logger
}

// NewService builds the catalog service. The cache is optional; without it
// every fetch reads straight from the repository.
func NewService(repo Repository, cache redis.SnapshotStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logger: logg}, nil
}

// FetchProducts returns the current full catalog snapshot, served from the
// cache when warm and rebuilt from Postgres otherwise.
func (s *service) FetchProducts(ctx context.Context) ([]ProductView, error) {
	if views, ok := s.fromCache(ctx); ok {
		return views, nil
	}

	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, buildView(product))
	}

	s.storeCache(ctx, views)
	return views, nil
}

// ListProducts returns the snapshot narrowed by the filter.
func (s *service) ListProducts(ctx context.Context, filter Filter) ([]ProductView, error) {
	views, err := s.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilter(views, filter), nil
}

// GetProductWithStock reads one product and its live stock straight from the
// repository. Cart mutations call this at decision time so the check always
// sees the latest committed stock rather than the cached snapshot.
func (s *service) GetProductWithStock(ctx context.Context, productID uuid.UUID) (*models.Product, map[enums.Size]int, error) {
	product, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	if !product.IsActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, stockBySize(*product), nil
}

// Refresh drops the cached snapshot and rebuilds it. The stock change feed
// calls this on every signal; the snapshot is replaced whole, never patched.
func (s *service) Refresh(ctx context.Context) error {
	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cache.CatalogKey(snapshotScope)); err != nil {
			s.logger.Warn(ctx, fmt.Sprintf("dropping catalog snapshot: %v", err))
		}
	}
	if _, err := s.FetchProducts(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "catalog snapshot refreshed")
	return nil
}

func (s *service) fromCache(ctx context.Context) ([]ProductView, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey(snapshotScope))
	if err != nil {
		if !redis.IsMiss(err) {
			s.logger.Warn(ctx, fmt.Sprintf("reading catalog snapshot: %v", err))
		}
		return nil, false
	}
	var views []ProductView
	if err := json.Unmarshal([]byte(raw), &views); err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("decoding catalog snapshot: %v", err))
		return nil, false
	}
	return views, true
}

func (s *service) storeCache(ctx context.Context, views []ProductView) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(views)
	if err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("encoding catalog snapshot: %v", err))
		return
	}
	if err := s.cache.Set(ctx, s.cache.CatalogKey(snapshotScope), string(raw), snapshotTTL); err != nil {
		s.logger.Warn(ctx, fmt.Sprintf("storing catalog snapshot: %v", err))
	}
}

func buildView(product models.Product) ProductView {
	return ProductView{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		DiscountPrice:  product.DiscountPrice,
		EffectivePrice: product.EffectivePrice(),
		Images:         append([]string(nil), product.Images...),
		Sizes:          append([]string(nil), product.Sizes...),
		Gender:         product.Gender,
		Color:          product.Color,
		Stock:          stockBySize(product),
	}
}

func stockBySize(product models.Product) map[enums.Size]int {
	stock := make(map[enums.Size]int, len(product.Sizes))
	for _, raw := range product.Sizes {
		if size, err := enums.ParseSize(raw); err == nil {
			stock[size] = 0
		}
	}
	for _, row := range product.Stock {
		stock[row.Size] = row.Quantity
	}
	return stock
}

func applyFilter(views []ProductView, filter Filter) []ProductView {
	out := make([]ProductView, 0, len(views))
	for _, view := range views {
		if matchesFilter(view, filter) {
			out = append(out, view)
		}
	}
	return out
}

func matchesFilter(view ProductView, filter Filter) bool {
	if filter.Gender != "" && !strings.EqualFold(string(view.Gender), filter.Gender) {
		return false
	}
	if filter.Color != "" && !strings.EqualFold(view.Color, filter.Color) {
		return false
	}
	if filter.Size != "" {
		size, err := enums.ParseSize(filter.Size)
		if err != nil {
			return false
		}
		// size filter only matches sizes that still have stock
		if view.Stock[size] <= 0 {
			return false
		}
	}
	if filter.Search != "" && !matchesSearch(view, filter.Search) {
		return false
	}
	return true
}

func matchesSearch(view ProductView, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	haystacks := []string{
		strings.ToLower(view.Name),
		strings.ToLower(view.Description),
		strings.ToLower(string(view.Gender)),
		strings.ToLower(view.Color),
	}
	haystacks = append(haystacks, loweredSizes(view.Sizes)...)
	for _, hay := range haystacks {
		if strings.Contains(hay, needle) {
			return true
		}
	}
	return false
}

func loweredSizes(sizes []string) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, strings.ToLower(s))
	}
	return out
}
