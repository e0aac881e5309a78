// Package cache keeps hot loan records in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"

	"github.com/redis/go-redis/v9"
)

// LoanCache is a read-through cache of loan records keyed by loan ID. A zero
// TTL disables caching.
type LoanCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewLoanCache(client redis.Cmdable, ttl time.Duration) *LoanCache {
	return &LoanCache{client: client, ttl: ttl}
}

func loanKey(id uuid.UUID) string {
	return fmt.Sprintf("loan:%s", id)
}

// Get returns nil without error on a cache miss
func (c *LoanCache) Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	if c.ttl == 0 {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, loanKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var loan domain.Loan
	if err := json.Unmarshal(raw, &loan); err != nil {
		// undecodable entries are evicted so the next read repopulates them
		if delErr := c.Delete(ctx, id); delErr != nil {
			return nil, fmt.Errorf("decode cached loan %s: %w", id, errors.Join(err, delErr))
		}
		return nil, fmt.Errorf("decode cached loan %s: %w", id, err)
	}
	return &loan, nil
}

func (c *LoanCache) Set(ctx context.Context, loan *domain.Loan) error {
	if c.ttl == 0 {
		return nil
	}

	raw, err := json.Marshal(loan)
	if err != nil {
		return fmt.Errorf("encode loan %s: %w", loan.ID, err)
	}
	return c.client.Set(ctx, loanKey(loan.ID), raw, c.ttl).Err()
}

// Delete evicts a loan record
func (c *LoanCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, loanKey(id)).Err()
}
