package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flyflex/config"
	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	offersTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, offersTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		offersTTL: offersTTL,
	}
}

func (c *RedisCache) GetOffers(ctx context.Context, key string) ([]domain.Offer, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offers []domain.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *RedisCache) SetOffers(ctx context.Context, key string, offers []domain.Offer) error {
	payload, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.offersTTL).Err()
}

func (c *RedisCache) GetStats(ctx context.Context) (*domain.BookingStats, error) {
	data, err := c.client.Get(ctx, statsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats domain.BookingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisCache) SetStats(ctx context.Context, stats domain.BookingStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(), payload, c.offersTTL).Err()
}

// OffersKey normalizes a search into a cache key. Seat counts drift under
// load, so entries live only for the configured TTL.
func OffersKey(departureCity, arrivalCity string, date time.Time, passengers int, class domain.FareClass) string {
	return fmt.Sprintf("cache:offers:%s|%s|%s|%d|%s",
		strings.ToLower(strings.TrimSpace(departureCity)),
		strings.ToLower(strings.TrimSpace(arrivalCity)),
		date.Format("2006-01-02"), passengers, class)
}

func statsKey() string {
	return "cache:booking_stats"
}
