package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/pkg/utils"
)

// ErrPlanCacheMiss is returned when no plan set is cached for the key.
var ErrPlanCacheMiss = errors.New("payment plan cache miss")

type planCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCacheRepository stores one JSON value per (customer, program) key.
// A plain SET makes racing pricing requests last-write-wins, which is the
// required serialization for stale-option protection.
func NewPlanCacheRepository(client *redis.Client, ttl time.Duration) PlanCacheRepository {
	return &planCacheRepository{client: client, ttl: ttl}
}

func (r *planCacheRepository) Get(ctx context.Context, customerID, programID string) (*domain.PlanCacheEntry, error) {
	raw, err := r.client.Get(ctx, utils.PlanCacheKey(customerID, programID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPlanCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var entry domain.PlanCacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *planCacheRepository) Set(ctx context.Context, entry *domain.PlanCacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, utils.PlanCacheKey(entry.CustomerID, entry.ProgramID), raw, r.ttl).Err()
}
