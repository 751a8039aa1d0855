package services

import (
	"context"
	"time"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/cache"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

const (
	statsCacheKey = "stats:summary"
	statsCacheTTL = 30 * time.Second
)

// StatsService computes the dashboard summary: collection counts plus total
// income. Results are cached briefly in Redis and invalidated whenever an
// order, product, or user changes.
type StatsService struct {
	products ProductStore
	orders   OrderStore
	users    UserStore
}

func NewStatsService(products ProductStore, orders OrderStore, users UserStore) *StatsService {
	return &StatsService{products: products, orders: orders, users: users}
}

func (s *StatsService) Get(ctx context.Context) (*models.Stats, error) {
	var cached models.Stats
	if err := cache.Get(ctx, statsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &models.Stats{}
	var err error

	if stats.Products, err = s.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Orders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalIncome, err = s.orders.TotalIncome(ctx); err != nil {
		return nil, err
	}

	cache.Set(ctx, statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}

// Invalidate drops the cached summary. Wired to the domain change events at
// startup.
func (s *StatsService) Invalidate() {
	cache.Del(context.Background(), statsCacheKey)
	logger.Debug("stats cache invalidated")
}
